package timelog

import (
	"time"

	"github.com/frahmantamala/workforce-portal/internal/core/common/validation"
	timelogDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/timelog"
	"github.com/frahmantamala/workforce-portal/pkg/optional"
)

type CreateTimeLogDTO struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Task      string     `json:"task"`
	Notes     string     `json:"notes"`
}

func (d CreateTimeLogDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("id", d.ID).Required().MaxLength(64)
	v.Field("userId", d.UserID).Required()
	v.Field("startTime", d.StartTime).Required()
	v.Field("endTime", d.EndTime).NotBefore(d.StartTime, "startTime")
	return v.Err()
}

// times are stored in UTC so text comparison in the database is chronological
func (d CreateTimeLogDTO) toDataModel() *timelogDatamodel.TimeLog {
	t := &timelogDatamodel.TimeLog{
		ID:        d.ID,
		UserID:    d.UserID,
		StartTime: d.StartTime.UTC(),
		Task:      d.Task,
		Notes:     d.Notes,
	}
	if d.EndTime != nil {
		end := d.EndTime.UTC()
		t.EndTime = &end
	}
	return t
}

// UpdateTimeLogDTO is a partial update; endTime null reopens the log.
type UpdateTimeLogDTO struct {
	UserID    optional.Field[string]    `json:"userId"`
	StartTime optional.Field[time.Time] `json:"startTime"`
	EndTime   optional.Field[time.Time] `json:"endTime"`
	Task      optional.Field[string]    `json:"task"`
	Notes     optional.Field[string]    `json:"notes"`
}

func (d UpdateTimeLogDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("userId", d.UserID.Value).NotNull(d.UserID.Null)
	v.Field("startTime", d.StartTime.Value).NotNull(d.StartTime.Null)
	if d.UserID.HasValue() {
		v.Field("userId", d.UserID.Value).Required()
	}
	return v.Err()
}

func (d UpdateTimeLogDTO) apply(t *timelogDatamodel.TimeLog) error {
	d.UserID.Apply(&t.UserID)
	d.StartTime.Apply(&t.StartTime)
	t.StartTime = t.StartTime.UTC()
	d.EndTime.ApplyPtr(&t.EndTime)
	if t.EndTime != nil {
		end := t.EndTime.UTC()
		t.EndTime = &end
	}
	d.Task.ApplyOrZero(&t.Task)
	d.Notes.ApplyOrZero(&t.Notes)

	v := validation.NewValidator()
	v.Field("endTime", t.EndTime).NotBefore(t.StartTime, "startTime")
	return v.Err()
}

// ListFilter narrows a listing. Date selects logs whose start falls on that UTC day.
type ListFilter struct {
	UserID string
	Date   string
}

func (f ListFilter) Validate() error {
	v := validation.NewValidator()
	v.Field("date", f.Date).Date()
	return v.Err()
}

// DayBounds returns the half-open UTC interval covering Date.
func (f ListFilter) DayBounds() (time.Time, time.Time, bool) {
	if f.Date == "" {
		return time.Time{}, time.Time{}, false
	}
	day, err := time.ParseInLocation(validation.DateLayout, f.Date, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return day, day.AddDate(0, 0, 1), true
}
