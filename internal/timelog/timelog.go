package timelog

import (
	"time"

	"github.com/frahmantamala/workforce-portal/internal"
	timelogDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/timelog"
)

type TimeLog struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Task      string     `json:"task"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

var (
	ErrNotFound    = internal.NewNotFoundError("time log not found", internal.ErrCodeTimeLogNotFound)
	ErrDuplicateID = internal.NewConflictError("time log id already exists", internal.ErrCodeDuplicateID)
)

func FromDataModel(t *timelogDatamodel.TimeLog) *TimeLog {
	var end *time.Time
	if t.EndTime != nil {
		e := t.EndTime.UTC()
		end = &e
	}
	return &TimeLog{
		ID:        t.ID,
		UserID:    t.UserID,
		StartTime: t.StartTime.UTC(),
		EndTime:   end,
		Task:      t.Task,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
