package service

import (
	"time"

	"tag_tracker_go/internal/model"
)

// DefaultReturnWindowDays is how long after scanning an item may be returned.
const DefaultReturnWindowDays = 30

// ReturnDatePolicy derives a tag's return-by date.
type ReturnDatePolicy struct {
	WindowDays int
}

// Effective returns explicit when it is set, otherwise scan plus the window.
// The same rule applies on create and on update.
func (p ReturnDatePolicy) Effective(scan time.Time, explicit *time.Time) time.Time {
	if explicit != nil {
		return model.CivilDate(*explicit)
	}
	days := p.WindowDays
	if days <= 0 {
		days = DefaultReturnWindowDays
	}
	return model.CivilDate(scan).AddDate(0, 0, days)
}

// EffectiveReturnDate applies the default 30-day policy.
func EffectiveReturnDate(scan time.Time, explicit *time.Time) time.Time {
	return ReturnDatePolicy{WindowDays: DefaultReturnWindowDays}.Effective(scan, explicit)
}
