package booking

import (
	"context"
	"strings"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
	"github.com/javialvarezdrive/gym-policia-local/internal/utils"
)

func (s *Service) CreateActivity(ctx context.Context, name, description string) (*domain.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	activity := &domain.Activity{
		Name:        name,
		Description: description,
	}
	if err := s.store.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

func (s *Service) GetActivity(ctx context.Context, id int64) (*domain.Activity, error) {
	return s.store.GetActivity(ctx, id)
}

func (s *Service) ListActivities(ctx context.Context) ([]*domain.Activity, error) {
	return s.store.ListActivities(ctx)
}

// UpdateActivity applies a field-level patch. A rename is re-checked against
// the catalog-wide name constraint by the store.
func (s *Service) UpdateActivity(ctx context.Context, id int64, name, description *string) (*domain.Activity, error) {
	activity, err := s.store.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, domain.NewValidationError("name", "is required")
		}
		activity.Name = trimmed
	}
	if description != nil {
		activity.Description = *description
	}

	if err := s.store.UpdateActivity(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// DeleteActivity refuses with domain.ErrInUse while sessions still reference
// the activity, so a delete never silently orphans a booking.
func (s *Service) DeleteActivity(ctx context.Context, id int64) error {
	return s.store.DeleteActivity(ctx, id)
}

func (s *Service) CreateShift(ctx context.Context, name, startTime, endTime string) (*domain.Shift, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if err := utils.ValidateShiftTimes(startTime, endTime); err != nil {
		return nil, err
	}

	shift := &domain.Shift{
		Name:      name,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := s.store.CreateShift(ctx, shift); err != nil {
		return nil, err
	}

	return shift, nil
}

func (s *Service) GetShift(ctx context.Context, id int64) (*domain.Shift, error) {
	return s.store.GetShift(ctx, id)
}

func (s *Service) ListShifts(ctx context.Context) ([]*domain.Shift, error) {
	return s.store.ListShifts(ctx)
}

func (s *Service) UpdateShift(ctx context.Context, id int64, name, startTime, endTime *string) (*domain.Shift, error) {
	shift, err := s.store.GetShift(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, domain.NewValidationError("name", "is required")
		}
		shift.Name = trimmed
	}
	if startTime != nil {
		shift.StartTime = *startTime
	}
	if endTime != nil {
		shift.EndTime = *endTime
	}

	// Re-validate the window as a whole; a patch may move either endpoint.
	if err := utils.ValidateShiftTimes(shift.StartTime, shift.EndTime); err != nil {
		return nil, err
	}

	if err := s.store.UpdateShift(ctx, shift); err != nil {
		return nil, err
	}

	return shift, nil
}

func (s *Service) DeleteShift(ctx context.Context, id int64) error {
	return s.store.DeleteShift(ctx, id)
}
