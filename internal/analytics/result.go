package analytics

import (
	"fmt"
	"sort"
)

// Confidence is a step function of the number of answered questions.
func Confidence(totalQuestions int) int {
	switch {
	case totalQuestions >= 50:
		return 95
	case totalQuestions >= 30:
		return 85
	case totalQuestions >= 20:
		return 75
	case totalQuestions >= 10:
		return 65
	default:
		return 50
	}
}

// BuildAssessmentResult classifies every issue score and assembles the outcome.
func BuildAssessmentResult(scores []IssueScore, method Method, cfg *ScoringConfig, totalQuestions int) *AssessmentOutcome {
	issues := make([]IssueResult, 0, len(scores))
	for _, s := range scores {
		// classify the stored score so severity can be recomputed from the result
		score := round(s.Score, 2)
		severity := ClassifySeverity(s.IssueID, score, method, cfg)
		result := IssueResult{
			IssueID:         s.IssueID,
			IssueName:       s.IssueName,
			Score:           score,
			NormalizedScore: round(s.NormalizedScore, 2),
			Severity:        severity,
		}
		if s.TScore != nil {
			t := round(*s.TScore, 2)
			result.TScore = &t
		}
		if issueCfg, ok := cfg.Issue(s.IssueID); ok {
			switch severity {
			case SeverityNormal:
				result.RecommendedCourseID = issueCfg.RecommendedCourseID
			case SeverityBorderline:
				if issueCfg.Professional != nil {
					p := *issueCfg.Professional
					result.ProfessionalReferral = &p
				}
			}
		}
		issues = append(issues, result)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Score > issues[j].Score
	})

	var risk RiskIndicators
	concerns := []string{}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityClinical:
			risk.ClinicalCount++
			concerns = append(concerns, issue.IssueName)
		case SeverityBorderline:
			risk.BorderlineCount++
			concerns = append(concerns, issue.IssueName)
		}
	}

	return &AssessmentOutcome{
		Method:          method,
		Issues:          issues,
		PrimaryConcerns: concerns,
		OverallSummary:  summarize(risk),
		Recommendations: buildRecommendations(issues),
		Metadata: AssessmentMetadata{
			TotalQuestions: totalQuestions,
			Confidence:     Confidence(totalQuestions),
			RiskIndicators: risk,
		},
	}
}

func summarize(risk RiskIndicators) string {
	switch {
	case risk.ClinicalCount > 0:
		return fmt.Sprintf("Assessment indicates %d area(s) of clinical concern. A professional evaluation is strongly recommended.", risk.ClinicalCount)
	case risk.BorderlineCount > 0:
		return fmt.Sprintf("Assessment indicates %d area(s) of borderline concern that should be monitored. Consider consulting a professional.", risk.BorderlineCount)
	default:
		return "All assessed areas are within normal range."
	}
}

func buildRecommendations(issues []IssueResult) []Recommendation {
	recs := []Recommendation{}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityNormal:
			if issue.RecommendedCourseID == "" {
				continue
			}
			recs = append(recs, Recommendation{
				IssueID:   issue.IssueID,
				IssueName: issue.IssueName,
				Type:      RecommendationCourse,
				Priority:  PriorityLow,
				Message:   fmt.Sprintf("Continue building %s skills with the recommended course.", issue.IssueName),
				CourseID:  issue.RecommendedCourseID,
			})
		case SeverityBorderline:
			recs = append(recs, Recommendation{
				IssueID:      issue.IssueID,
				IssueName:    issue.IssueName,
				Type:         RecommendationProfessional,
				Priority:     PriorityMedium,
				Message:      fmt.Sprintf("Monitor %s closely and consider a consultation with a specialist.", issue.IssueName),
				Professional: issue.ProfessionalReferral,
			})
		case SeverityClinical:
			recs = append(recs, Recommendation{
				IssueID:   issue.IssueID,
				IssueName: issue.IssueName,
				Type:      RecommendationClinicalEvaluation,
				Priority:  PriorityHigh,
				Message:   fmt.Sprintf("Seek a professional evaluation for %s as soon as possible.", issue.IssueName),
			})
		}
	}
	return recs
}

// ScoreAssessment runs aggregation and result assembly for one submission.
func ScoreAssessment(responses []Response, questionsByID map[string]*Question, method Method, cfg *ScoringConfig) (*AssessmentOutcome, error) {
	scores, scored, err := AggregateScores(responses, questionsByID, method, cfg)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, ErrNoScorableResponses
	}
	return BuildAssessmentResult(scores, method, cfg, scored), nil
}
