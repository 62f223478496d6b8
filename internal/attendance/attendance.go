package attendance

import (
	"time"

	"github.com/frahmantamala/workforce-portal/internal"
	attendanceDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/attendance"
)

// DefaultValue marks a full day.
const DefaultValue = 1.0

type Attendance struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Date      string     `json:"date"`
	ClockIn   *time.Time `json:"clockIn"`
	ClockOut  *time.Time `json:"clockOut"`
	Value     float64    `json:"value"`
	Location  string     `json:"location"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

var (
	ErrNotFound     = internal.NewNotFoundError("attendance record not found", internal.ErrCodeAttendanceNotFound)
	ErrDuplicateID  = internal.NewConflictError("attendance id already exists", internal.ErrCodeDuplicateID)
	ErrDuplicateDay = internal.NewConflictError("attendance already recorded for this user and date", internal.ErrCodeDuplicateAttend)
)

// Worked returns the time between clock-in and clock-out, or zero while open.
func (a *Attendance) Worked() time.Duration {
	if a.ClockIn == nil || a.ClockOut == nil {
		return 0
	}
	return a.ClockOut.Sub(*a.ClockIn)
}

func FromDataModel(a *attendanceDatamodel.Attendance) *Attendance {
	return &Attendance{
		ID:        a.ID,
		UserID:    a.UserID,
		Date:      a.Date,
		ClockIn:   utcPtr(a.ClockIn),
		ClockOut:  utcPtr(a.ClockOut),
		Value:     a.Value,
		Location:  a.Location,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
