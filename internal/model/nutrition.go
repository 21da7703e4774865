package model

import (
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
)

type NutritionRecord struct {
	BaseModel
	ChildID         string                 `gorm:"type:varchar(36);not null;index" json:"childId"`
	HeightCm        float64                `json:"heightCm"`
	WeightKg        float64                `json:"weightKg"`
	MeasurementDate time.Time              `gorm:"index" json:"measurementDate"`
	EatingHabits    analytics.EatingHabits `gorm:"embedded;embeddedPrefix:habit_" json:"eatingHabits"`
	Notes           string                 `gorm:"type:text" json:"notes,omitempty"`
}

func (NutritionRecord) TableName() string {
	return "nutrition_records"
}

func (r *NutritionRecord) Engine() analytics.NutritionRecord {
	return analytics.NutritionRecord{
		PhysicalMeasurement: analytics.PhysicalMeasurement{
			HeightCm:        r.HeightCm,
			WeightKg:        r.WeightKg,
			MeasurementDate: r.MeasurementDate,
		},
		EatingHabits: r.EatingHabits,
		Notes:        r.Notes,
	}
}

type NutritionRecommendation struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	ChildID        string    `gorm:"type:varchar(36);not null;index" json:"childId"`
	Position       int       `gorm:"not null" json:"-"`
	Category       string    `gorm:"size:20" json:"category"`
	Recommendation string    `gorm:"type:text" json:"recommendation"`
	Priority       string    `gorm:"size:20" json:"priority"`
	TargetArea     string    `gorm:"size:50" json:"targetArea"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (NutritionRecommendation) TableName() string {
	return "nutrition_recommendations"
}

func (n *NutritionRecommendation) Engine() analytics.NutritionRecommendation {
	return analytics.NutritionRecommendation{
		Category:       analytics.NutritionCategory(n.Category),
		Recommendation: n.Recommendation,
		Priority:       analytics.Priority(n.Priority),
		TargetArea:     n.TargetArea,
		CreatedAt:      n.CreatedAt,
	}
}
