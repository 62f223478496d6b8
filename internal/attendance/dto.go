package attendance

import (
	"time"

	"github.com/frahmantamala/workforce-portal/internal"
	"github.com/frahmantamala/workforce-portal/internal/core/common/validation"
	attendanceDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/attendance"
	"github.com/frahmantamala/workforce-portal/pkg/optional"
)

type CreateAttendanceDTO struct {
	ID       string     `json:"id"`
	UserID   string     `json:"userId"`
	Date     string     `json:"date"`
	ClockIn  *time.Time `json:"clockIn"`
	ClockOut *time.Time `json:"clockOut"`
	Value    *float64   `json:"value"`
	Location string     `json:"location"`
	Notes    string     `json:"notes"`
}

func (d *CreateAttendanceDTO) Validate() error {
	if d.Value == nil {
		def := DefaultValue
		d.Value = &def
	}
	var clockIn time.Time
	if d.ClockIn != nil {
		clockIn = *d.ClockIn
	}
	v := validation.NewValidator()
	v.Field("id", d.ID).Required().MaxLength(64)
	v.Field("userId", d.UserID).Required()
	v.Field("date", d.Date).Required().Date()
	v.Field("value", *d.Value).Range(0, 1, internal.ErrCodeInvalidValue)
	v.Field("clockOut", d.ClockOut).NotBefore(clockIn, "clockIn")
	return v.Err()
}

func (d CreateAttendanceDTO) toDataModel() *attendanceDatamodel.Attendance {
	return &attendanceDatamodel.Attendance{
		ID:       d.ID,
		UserID:   d.UserID,
		Date:     d.Date,
		ClockIn:  utcPtr(d.ClockIn),
		ClockOut: utcPtr(d.ClockOut),
		Value:    *d.Value,
		Location: d.Location,
		Notes:    d.Notes,
	}
}

// UpdateAttendanceDTO is a partial update. clockIn and clockOut accept null
// to clear; userId, date and value do not.
type UpdateAttendanceDTO struct {
	UserID   optional.Field[string]    `json:"userId"`
	Date     optional.Field[string]    `json:"date"`
	ClockIn  optional.Field[time.Time] `json:"clockIn"`
	ClockOut optional.Field[time.Time] `json:"clockOut"`
	Value    optional.Field[float64]   `json:"value"`
	Location optional.Field[string]    `json:"location"`
	Notes    optional.Field[string]    `json:"notes"`
}

func (d UpdateAttendanceDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("userId", d.UserID.Value).NotNull(d.UserID.Null)
	v.Field("date", d.Date.Value).NotNull(d.Date.Null).Date()
	v.Field("value", d.Value.Value).NotNull(d.Value.Null)
	if d.UserID.HasValue() {
		v.Field("userId", d.UserID.Value).Required()
	}
	if d.Date.HasValue() {
		v.Field("date", d.Date.Value).Required()
	}
	if d.Value.HasValue() {
		v.Field("value", d.Value.Value).Range(0, 1, internal.ErrCodeInvalidValue)
	}
	return v.Err()
}

// apply merges the update and re-checks the clock order on the merged row.
func (d UpdateAttendanceDTO) apply(a *attendanceDatamodel.Attendance) error {
	d.UserID.Apply(&a.UserID)
	d.Date.Apply(&a.Date)
	d.ClockIn.ApplyPtr(&a.ClockIn)
	d.ClockOut.ApplyPtr(&a.ClockOut)
	a.ClockIn = utcPtr(a.ClockIn)
	a.ClockOut = utcPtr(a.ClockOut)
	d.Value.Apply(&a.Value)
	d.Location.ApplyOrZero(&a.Location)
	d.Notes.ApplyOrZero(&a.Notes)

	var clockIn time.Time
	if a.ClockIn != nil {
		clockIn = *a.ClockIn
	}
	v := validation.NewValidator()
	v.Field("clockOut", a.ClockOut).NotBefore(clockIn, "clockIn")
	return v.Err()
}

type ListFilter struct {
	UserID string
	Date   string
	From   string
	To     string
}

func (f ListFilter) Validate() error {
	v := validation.NewValidator()
	v.Field("date", f.Date).Date()
	v.Field("from", f.From).Date()
	v.Field("to", f.To).Date()
	return v.Err()
}
