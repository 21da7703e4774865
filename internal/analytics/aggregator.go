package analytics

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// accumulator folds one issue's evidence. The fields used depend on the method.
type accumulator struct {
	issueID     string
	issueName   string
	rawScore    float64
	totalWeight float64
	count       int
}

type scoringStrategy struct {
	accumulate func(acc *accumulator, answer, weight float64)
	finalize   func(acc *accumulator, stats IssueStatistics) IssueScore
}

var strategies = map[Method]scoringStrategy{
	MethodWeightedAverage: {
		accumulate: func(acc *accumulator, answer, weight float64) {
			acc.rawScore += answer * weight
			acc.totalWeight += weight
			acc.count++
		},
		finalize: func(acc *accumulator, _ IssueStatistics) IssueScore {
			score := 0.0
			if acc.totalWeight != 0 {
				score = acc.rawScore / acc.totalWeight
			}
			return IssueScore{
				Score:           score,
				NormalizedScore: clamp(score, 0, 100),
			}
		},
	},
	MethodTScoreNonWeighted: {
		accumulate: func(acc *accumulator, answer, _ float64) {
			acc.rawScore += answer
			acc.count++
		},
		finalize: func(acc *accumulator, st IssueStatistics) IssueScore {
			m := 0.0
			if acc.count > 0 {
				m = acc.rawScore / float64(acc.count)
			}
			return tScoreResult(m, st)
		},
	},
	MethodTScoreWeighted: {
		accumulate: func(acc *accumulator, answer, weight float64) {
			acc.rawScore += answer * (weight / 100)
			acc.totalWeight += weight / 100
			acc.count++
		},
		finalize: func(acc *accumulator, st IssueStatistics) IssueScore {
			m := 0.0
			if acc.totalWeight != 0 {
				m = acc.rawScore / acc.totalWeight
			}
			return tScoreResult(m, st)
		},
	},
}

// ZScore standardizes a mean against configured statistics. A zero stdDev yields 0.
func ZScore(value float64, st IssueStatistics) float64 {
	if st.StdDev == 0 {
		return 0
	}
	return (value - st.Mean) / st.StdDev
}

func tScoreResult(m float64, st IssueStatistics) IssueScore {
	t := 50 + 10*ZScore(m, st)
	return IssueScore{
		Score:           t,
		NormalizedScore: clamp(t, 0, 100),
		TScore:          &t,
	}
}

// ParseMethod maps a method name to the closed Method enum.
func ParseMethod(name string) (Method, error) {
	m := Method(name)
	if _, ok := strategies[m]; !ok {
		return "", ErrInvalidMethod
	}
	return m, nil
}

// parseAnswer returns the numeric value of an answer and false when it is not a finite number.
func parseAnswer(answer interface{}) (float64, bool) {
	switch a := answer.(type) {
	case nil, bool:
		return 0, false
	case string:
		if strings.TrimSpace(a) == "" {
			return 0, false
		}
		answer = strings.TrimSpace(a)
	}
	v, err := cast.ToFloat64E(answer)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// AggregateScores accumulates per-issue scores over all responses. Questions missing from
// questionsByID, answers that do not parse to a finite number and answers outside the
// question's range are skipped.
// The second return value is the number of responses that contributed.
func AggregateScores(responses []Response, questionsByID map[string]*Question, method Method, cfg *ScoringConfig) ([]IssueScore, int, error) {
	strategy, ok := strategies[method]
	if !ok {
		return nil, 0, ErrInvalidMethod
	}

	accs := make(map[string]*accumulator)
	var order []string
	scored := 0

	for _, resp := range responses {
		q, ok := questionsByID[resp.QuestionID]
		if !ok || q == nil {
			continue
		}
		answer, ok := parseAnswer(resp.Answer)
		if !ok || !q.inRange(answer) {
			continue
		}
		weights := ResolveIssueWeights(q)
		if len(weights) == 0 {
			continue
		}
		scored++
		for _, iw := range weights {
			acc, exists := accs[iw.IssueID]
			if !exists {
				acc = &accumulator{issueID: iw.IssueID, issueName: iw.IssueName}
				accs[iw.IssueID] = acc
				order = append(order, iw.IssueID)
			}
			strategy.accumulate(acc, answer, iw.Weightage)
		}
	}

	scores := make([]IssueScore, 0, len(order))
	for _, id := range order {
		acc := accs[id]
		s := strategy.finalize(acc, cfg.Statistics(id))
		s.IssueID = acc.issueID
		s.IssueName = acc.issueName
		s.RawScore = acc.rawScore
		s.TotalWeight = acc.totalWeight
		s.Count = acc.count
		scores = append(scores, s)
	}
	return scores, scored, nil
}
