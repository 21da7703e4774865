package analytics

type subjectStats struct {
	name   string
	latest float64
	marks  []float64
}

func recordMarks(r EducationRecord) []float64 {
	marks := make([]float64, 0, len(r.Subjects))
	for _, s := range r.Subjects {
		marks = append(marks, s.Marks)
	}
	return marks
}

// AnalyzeEducation summarizes a chronologically ordered list of grade records.
// Order is taken from slice position; RecordedAt is not consulted.
func AnalyzeEducation(records []EducationRecord, policy EducationPolicy) EducationAnalysis {
	analysis := EducationAnalysis{
		Trend:                    TrendStable,
		SubjectsNeedingAttention: []string{},
		TopPerformingSubjects:    []string{},
	}
	if len(records) == 0 {
		return analysis
	}

	latest := recordMarks(records[len(records)-1])
	analysis.CurrentAverage = round(mean(latest), 2)

	averages := make([]float64, 0, len(records))
	var all []float64
	for _, r := range records {
		marks := recordMarks(r)
		if len(marks) == 0 {
			continue
		}
		averages = append(averages, mean(marks))
		all = append(all, marks...)
	}

	trend, strength := detectTrend(averages, policy.TrendEpsilon)
	analysis.Trend = trend
	analysis.TrendStrength = round(strength, 2)
	analysis.TrendSlope = round(slope(averages), 2)

	for _, s := range subjectBreakdown(records) {
		avg := mean(s.marks)
		switch {
		case s.latest < policy.WeakCutoff || avg < policy.WeakCutoff:
			analysis.SubjectsNeedingAttention = append(analysis.SubjectsNeedingAttention, s.name)
		case avg >= policy.StrongCutoff:
			analysis.TopPerformingSubjects = append(analysis.TopPerformingSubjects, s.name)
		}
	}

	maxGPA := policy.MaxGPA
	if maxGPA <= 0 {
		maxGPA = DefaultEducationPolicy().MaxGPA
	}
	analysis.OverallGPA = round(clamp(mean(all)/100*maxGPA, 0, maxGPA), 2)
	analysis.ConsistencyScore = round(consistency(latest), 2)
	return analysis
}

// detectTrend compares the mean record average of the second half against the first.
// With an odd count the middle record belongs to the second half.
func detectTrend(averages []float64, epsilon float64) (Trend, float64) {
	if len(averages) < 2 {
		return TrendStable, 0
	}
	mid := len(averages) / 2
	diff := mean(averages[mid:]) - mean(averages[:mid])
	switch {
	case diff > epsilon:
		return TrendImproving, diff
	case diff < -epsilon:
		return TrendDeclining, -diff
	default:
		if diff < 0 {
			diff = -diff
		}
		return TrendStable, diff
	}
}

// subjectBreakdown flattens marks per subject in first-appearance order.
func subjectBreakdown(records []EducationRecord) []*subjectStats {
	index := make(map[string]*subjectStats)
	var ordered []*subjectStats
	for _, r := range records {
		for _, sm := range r.Subjects {
			s, ok := index[sm.Subject]
			if !ok {
				s = &subjectStats{name: sm.Subject}
				index[sm.Subject] = s
				ordered = append(ordered, s)
			}
			s.marks = append(s.marks, sm.Marks)
			s.latest = sm.Marks
		}
	}
	return ordered
}

// consistency is 100 minus twice the population standard deviation of the marks.
func consistency(marks []float64) float64 {
	if len(marks) == 0 {
		return 0
	}
	if len(marks) == 1 {
		return 100
	}
	return clamp(100-2*populationStdDev(marks), 0, 100)
}
