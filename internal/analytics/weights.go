package analytics

// ResolveIssueWeights returns the (issue, weight) contributions of a question.
// Duplicate issue IDs keep the first entry and weightage is clamped to [0,100].
func ResolveIssueWeights(q *Question) []IssueWeight {
	if q == nil {
		return nil
	}
	seen := make(map[string]bool, len(q.IssueWeightages))
	weights := make([]IssueWeight, 0, len(q.IssueWeightages))
	for _, iw := range q.IssueWeightages {
		if iw.IssueID == "" || seen[iw.IssueID] {
			continue
		}
		seen[iw.IssueID] = true
		iw.Weightage = clamp(iw.Weightage, 0, 100)
		if iw.IssueName == "" {
			iw.IssueName = iw.IssueID
		}
		weights = append(weights, iw)
	}
	return weights
}
