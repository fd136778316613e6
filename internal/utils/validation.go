package utils

import (
	"slices"
	"time"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

// ValidateBadge checks the NIP format: exactly 6 ASCII digits.
func ValidateBadge(badge string) error {
	if len(badge) != 6 {
		return domain.NewValidationError("badge", "must be exactly 6 digits")
	}
	for _, c := range badge {
		if c < '0' || c > '9' {
			return domain.NewValidationError("badge", "must contain digits only")
		}
	}
	return nil
}

// ValidateShiftTimes checks the "15:04:05" format and requires start < end.
func ValidateShiftTimes(startTime, endTime string) error {
	start, err := time.Parse("15:04:05", startTime)
	if err != nil {
		return domain.NewValidationError("startTime", "must use the HH:MM:SS format")
	}
	end, err := time.Parse("15:04:05", endTime)
	if err != nil {
		return domain.NewValidationError("endTime", "must use the HH:MM:SS format")
	}
	if !start.Before(end) {
		return domain.NewValidationError("endTime", "must be after the start time")
	}
	return nil
}

func ValidateSection(section domain.Section) error {
	if !slices.Contains(domain.Sections(), section) {
		return domain.NewValidationError("section", "unknown section")
	}
	return nil
}

func ValidateGroup(group domain.Group) error {
	if !slices.Contains(domain.Groups(), group) {
		return domain.NewValidationError("group", "unknown group")
	}
	return nil
}
