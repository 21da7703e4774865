package analytics

import (
	"fmt"
	"sort"
	"time"
)

const (
	SubjectOverall          = "Overall"
	SubjectAdvancedLearning = "Advanced Learning"
)

// GenerateSuggestions evaluates every rule against the analysis and returns all matches,
// ordered high > medium > low. The list is rebuilt wholesale on every call.
func GenerateSuggestions(records []EducationRecord, analysis EducationAnalysis, policy EducationPolicy, now time.Time) []Suggestion {
	suggestions := []Suggestion{}
	if len(records) == 0 {
		return suggestions
	}

	add := func(subject, text string, priority Priority, kind SuggestionType) {
		suggestions = append(suggestions, Suggestion{
			Subject:    subject,
			Suggestion: text,
			Priority:   priority,
			Type:       kind,
			CreatedAt:  now,
		})
	}

	for _, subject := range analysis.SubjectsNeedingAttention {
		add(subject,
			fmt.Sprintf("%s is below %.0f%%. Schedule extra practice sessions and review the fundamentals with a tutor.", subject, policy.WeakCutoff),
			PriorityHigh, SuggestionPerformance)
	}

	switch analysis.Trend {
	case TrendDeclining:
		add(SubjectOverall,
			fmt.Sprintf("Average marks dropped by %.1f points. Review study routines and talk with teachers about recent changes.", analysis.TrendStrength),
			PriorityHigh, SuggestionTrend)
	case TrendImproving:
		add(SubjectOverall,
			fmt.Sprintf("Average marks improved by %.1f points. Keep up the current routine and celebrate the progress.", analysis.TrendStrength),
			PriorityLow, SuggestionTrend)
	}

	if analysis.ConsistencyScore < policy.LowConsistency {
		add(SubjectOverall,
			"Performance varies widely across subjects. Balance study time so weaker subjects get more attention.",
			PriorityMedium, SuggestionConsistency)
	}

	if len(analysis.SubjectsNeedingAttention) > 0 && len(analysis.TopPerformingSubjects) > 0 {
		add(SubjectOverall,
			fmt.Sprintf("Use the study habits that work in %s to support %s.",
				joinSubjects(analysis.TopPerformingSubjects), joinSubjects(analysis.SubjectsNeedingAttention)),
			PriorityMedium, SuggestionStrategic)
	}

	latest := records[len(records)-1].Subjects
	if len(latest) > 0 && allAtLeast(latest, policy.StrongCutoff) {
		add(SubjectAdvancedLearning,
			"Every subject is at an excellent level. Explore enrichment programs, competitions or advanced material.",
			PriorityLow, SuggestionStrategic)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority.rank() > suggestions[j].Priority.rank()
	})
	return suggestions
}

func allAtLeast(subjects []SubjectMark, cutoff float64) bool {
	for _, s := range subjects {
		if s.Marks < cutoff {
			return false
		}
	}
	return true
}

func joinSubjects(subjects []string) string {
	switch len(subjects) {
	case 0:
		return ""
	case 1:
		return subjects[0]
	}
	out := subjects[0]
	for _, s := range subjects[1 : len(subjects)-1] {
		out += ", " + s
	}
	return out + " and " + subjects[len(subjects)-1]
}
