package analytics

import (
	"fmt"
	"sort"
	"time"
)

const (
	habitCount           = 8
	severeUnderweightBMI = 14
	severeObesityBMI     = 35
)

// BMI returns weight / height(m)^2 rounded to one decimal, or 0 for a non-positive height.
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	m := heightCm / 100
	return round(weightKg/(m*m), 1)
}

func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi <= 0:
		return BMIUnknown
	case bmi < 16:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

type habitRule struct {
	key      string
	category NutritionCategory
	text     string
	value    func(h EatingHabits) bool
}

var habitRules = []habitRule{
	{"breakfast", NutritionDiet, "Start each day with a balanced breakfast.", func(h EatingHabits) bool { return h.EatsBreakfast }},
	{"fruits", NutritionDiet, "Add at least two portions of fruit to daily meals.", func(h EatingHabits) bool { return h.EatsFruits }},
	{"vegetables", NutritionDiet, "Include vegetables in lunch and dinner.", func(h EatingHabits) bool { return h.EatsVegetables }},
	{"hydration", NutritionDiet, "Encourage drinking water regularly through the day.", func(h EatingHabits) bool { return h.DrinksEnoughWater }},
	{"junk_food", NutritionHabits, "Limit packaged snacks and fast food to occasional treats.", func(h EatingHabits) bool { return h.LimitsJunkFood }},
	{"sugary_drinks", NutritionHabits, "Replace sugary drinks with water or milk.", func(h EatingHabits) bool { return h.LimitsSugaryDrinks }},
	{"meal_times", NutritionHabits, "Keep meals at regular times each day.", func(h EatingHabits) bool { return h.RegularMealTimes }},
	{"physical_activity", NutritionExercise, "Aim for at least 60 minutes of active play every day.", func(h EatingHabits) bool { return h.PhysicallyActive }},
}

// HealthyHabitsScore is the share of positive habits, as a percentage with one decimal.
func HealthyHabitsScore(h EatingHabits) float64 {
	count := 0
	for _, rule := range habitRules {
		if rule.value(h) {
			count++
		}
	}
	return round(float64(count)/habitCount*100, 1)
}

// AnalyzeNutrition derives BMI, category, habits score and the blended health score.
func AnalyzeNutrition(record NutritionRecord) NutritionAnalysis {
	bmi := BMI(record.PhysicalMeasurement.HeightCm, record.PhysicalMeasurement.WeightKg)
	category := CategorizeBMI(bmi)
	habits := HealthyHabitsScore(record.EatingHabits)

	baseline := 70.0
	if category == BMINormal {
		baseline = 100
	}

	return NutritionAnalysis{
		BMI:                bmi,
		BMICategory:        category,
		HealthScore:        round(0.5*baseline+0.5*habits, 1),
		HealthyHabitsScore: habits,
		IsHealthyWeight:    category == BMINormal,
	}
}

// GenerateNutritionRecommendations applies the BMI and habit rules, ordered critical first.
func GenerateNutritionRecommendations(record NutritionRecord, analysis NutritionAnalysis, now time.Time) []NutritionRecommendation {
	recs := []NutritionRecommendation{}
	add := func(category NutritionCategory, text string, priority Priority, target string) {
		recs = append(recs, NutritionRecommendation{
			Category:       category,
			Recommendation: text,
			Priority:       priority,
			TargetArea:     target,
			CreatedAt:      now,
		})
	}

	switch analysis.BMICategory {
	case BMIUnderweight:
		if analysis.BMI < severeUnderweightBMI {
			add(NutritionDiet, fmt.Sprintf("BMI of %.1f is far below the healthy range. Increase energy-dense, nutritious meals and snacks.", analysis.BMI), PriorityCritical, "weight_gain")
			add(NutritionMedical, "Consult a pediatrician or dietitian promptly about low body weight.", PriorityCritical, "weight_gain")
		} else {
			add(NutritionDiet, fmt.Sprintf("BMI of %.1f is below the healthy range. Add nutritious snacks between meals.", analysis.BMI), PriorityHigh, "weight_gain")
		}
	case BMIOverweight:
		add(NutritionDiet, "Reduce portion sizes and prefer whole foods over processed ones.", PriorityMedium, "weight_management")
		add(NutritionExercise, "Increase daily physical activity with sports or outdoor play.", PriorityMedium, "weight_management")
	case BMIObese:
		if analysis.BMI >= severeObesityBMI {
			add(NutritionDiet, fmt.Sprintf("BMI of %.1f is far above the healthy range. Work with a dietitian on a structured meal plan.", analysis.BMI), PriorityCritical, "weight_management")
		} else {
			add(NutritionDiet, "Plan balanced meals with controlled portions and fewer calorie-dense foods.", PriorityHigh, "weight_management")
		}
		add(NutritionExercise, "Build a daily routine of moderate to vigorous physical activity.", PriorityHigh, "weight_management")
		add(NutritionMedical, "Schedule a check-up with a pediatrician to review weight and overall health.", PriorityHigh, "weight_management")
	}

	habitPriority := PriorityMedium
	if analysis.HealthyHabitsScore >= 75 {
		habitPriority = PriorityLow
	}
	for _, rule := range habitRules {
		if !rule.value(record.EatingHabits) {
			add(rule.category, rule.text, habitPriority, rule.key)
		}
	}

	if analysis.HealthyHabitsScore < 50 {
		add(NutritionHabits, "Most healthy eating habits are missing. Build a simple weekly routine and introduce one new habit at a time.", PriorityHigh, "overall_habits")
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.rank() > recs[j].Priority.rank()
	})
	return recs
}
