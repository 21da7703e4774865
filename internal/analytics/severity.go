package analytics

// ClassifySeverity maps a score to a severity tier using the issue's thresholds for the
// method's family. Unknown issues or missing thresholds are normal. Ranges are open above.
func ClassifySeverity(issueID string, score float64, method Method, cfg *ScoringConfig) Severity {
	t, ok := cfg.Thresholds(issueID, method.ThresholdFamily())
	if !ok {
		return SeverityNormal
	}
	switch {
	case score >= t.Clinical.Min:
		return SeverityClinical
	case score >= t.Borderline.Min:
		return SeverityBorderline
	default:
		return SeverityNormal
	}
}
