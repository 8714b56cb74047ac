package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"roomshare/internal/domain"
)

type AllocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepository(db *gorm.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

type allocationModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	PropertyID      string     `gorm:"column:property_id"`
	WeeklyLimitDays float64    `gorm:"column:weekly_limit_days"`
	MorningDuration float64    `gorm:"column:morning_duration"`
	MiddayDuration  float64    `gorm:"column:midday_duration"`
	EveningDuration float64    `gorm:"column:evening_duration"`
	ResetDayOfWeek  int        `gorm:"column:reset_day_of_week"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       *time.Time `gorm:"column:updated_at"`
}

func (allocationModel) TableName() string { return "time_allocations" }

func toDomainAllocation(m allocationModel) *domain.TimeAllocation {
	a := &domain.TimeAllocation{
		ID:              m.ID,
		PropertyID:      m.PropertyID,
		WeeklyLimitDays: m.WeeklyLimitDays,
		MorningDuration: m.MorningDuration,
		MiddayDuration:  m.MiddayDuration,
		EveningDuration: m.EveningDuration,
		ResetDayOfWeek:  m.ResetDayOfWeek,
		CreatedAt:       m.CreatedAt,
	}
	if m.UpdatedAt != nil {
		a.UpdatedAt = *m.UpdatedAt
	}
	return a
}

func toAllocationModel(a *domain.TimeAllocation) allocationModel {
	m := allocationModel{
		ID:              a.ID,
		PropertyID:      a.PropertyID,
		WeeklyLimitDays: a.WeeklyLimitDays,
		MorningDuration: a.MorningDuration,
		MiddayDuration:  a.MiddayDuration,
		EveningDuration: a.EveningDuration,
		ResetDayOfWeek:  a.ResetDayOfWeek,
		CreatedAt:       a.CreatedAt,
	}
	if !a.UpdatedAt.IsZero() {
		v := a.UpdatedAt
		m.UpdatedAt = &v
	}
	return m
}

// GetByProperty returns the property's allocation row. Returns
// gorm.ErrRecordNotFound when the property has no explicit policy.
func (r *AllocationRepository) GetByProperty(ctx context.Context, propertyID string) (*domain.TimeAllocation, error) {
	var m allocationModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAllocation(m), nil
}

func (r *AllocationRepository) Update(ctx context.Context, a *domain.TimeAllocation) error {
	now := time.Now().UTC()
	a.UpdatedAt = now
	return r.db.WithContext(ctx).
		Model(&allocationModel{}).
		Where("property_id = ?", a.PropertyID).
		Updates(map[string]any{
			"weekly_limit_days": a.WeeklyLimitDays,
			"morning_duration":  a.MorningDuration,
			"midday_duration":   a.MiddayDuration,
			"evening_duration":  a.EveningDuration,
			"reset_day_of_week": a.ResetDayOfWeek,
			"updated_at":        now,
		}).Error
}
