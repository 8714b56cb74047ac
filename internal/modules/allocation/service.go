package allocation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"roomshare/internal/domain"
	"roomshare/internal/pkg/validator"
)

// Built-in policy used when a property has no explicit allocation row.
const (
	DefaultWeeklyLimitDays = 7.0
	DefaultMorningDuration = 0.5
	DefaultMiddayDuration  = 1.0
	DefaultEveningDuration = 1.0
	DefaultResetDayOfWeek  = 1 // Monday
)

// Defaults returns the built-in policy for a property without one.
func Defaults(propertyID string) *domain.TimeAllocation {
	return &domain.TimeAllocation{
		PropertyID:      propertyID,
		WeeklyLimitDays: DefaultWeeklyLimitDays,
		MorningDuration: DefaultMorningDuration,
		MiddayDuration:  DefaultMiddayDuration,
		EveningDuration: DefaultEveningDuration,
		ResetDayOfWeek:  DefaultResetDayOfWeek,
	}
}

// WeekWindow returns the half-open [start, end) quota window containing
// asOf: the most recent occurrence of the reset day (ISO, Monday=1)
// walking backward from asOf inclusive, spanning seven days.
func WeekWindow(resetDayOfWeek int, asOf time.Time) (time.Time, time.Time) {
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	iso := int(day.Weekday())
	if iso == 0 {
		iso = 7 // time.Sunday is 0, ISO says 7
	}

	back := (iso - resetDayOfWeek + 7) % 7
	start := day.AddDate(0, 0, -back)
	return start, start.AddDate(0, 0, 7)
}

type Service struct {
	allocations AllocationRepository
	properties  PropertyRepository
	resolver    AccessResolver
}

func NewService(allocations AllocationRepository, properties PropertyRepository, resolver AccessResolver) *Service {
	return &Service{
		allocations: allocations,
		properties:  properties,
		resolver:    resolver,
	}
}

// ForProperty returns the property's effective policy, falling back to the
// built-in defaults when no row exists.
func (s *Service) ForProperty(ctx context.Context, propertyID string) (*domain.TimeAllocation, error) {
	a, err := s.allocations.GetByProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Defaults(propertyID), nil
		}
		return nil, err
	}
	return a, nil
}

// Get returns the policy to a caller with at least member standing.
func (s *Service) Get(ctx context.Context, callerID, propertyID string) (*domain.TimeAllocation, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	role, err := s.resolver.Resolve(ctx, callerID, property)
	if err != nil {
		return nil, err
	}
	if !role.CanViewProperty() {
		return nil, ErrAccessDenied
	}

	return s.ForProperty(ctx, propertyID)
}

// Update applies partial changes to the property's policy. Only an admin
// or the owner may change it; values are validated before any write.
// Updating never touches existing bookings: their duration is snapshotted
// at creation.
func (s *Service) Update(ctx context.Context, callerID, propertyID string, req UpdateAllocationRequest) (*domain.TimeAllocation, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	role, err := s.resolver.Resolve(ctx, callerID, property)
	if err != nil {
		return nil, err
	}
	if !role.CanManage() {
		return nil, ErrAccessDenied
	}

	a, err := s.allocations.GetByProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	if req.WeeklyLimitDays != nil {
		a.WeeklyLimitDays = *req.WeeklyLimitDays
	}
	if req.MorningDuration != nil {
		a.MorningDuration = *req.MorningDuration
	}
	if req.MiddayDuration != nil {
		a.MiddayDuration = *req.MiddayDuration
	}
	if req.EveningDuration != nil {
		a.EveningDuration = *req.EveningDuration
	}
	if req.ResetDayOfWeek != nil {
		a.ResetDayOfWeek = *req.ResetDayOfWeek
	}

	if fieldErrs := validator.Validate(a); fieldErrs != nil {
		return nil, ErrInvalidPolicy
	}

	if err := s.allocations.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
