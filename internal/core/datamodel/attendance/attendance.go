package attendance

import "time"

type Attendance struct {
	ID        string     `gorm:"column:id;primaryKey"`
	UserID    string     `gorm:"column:user_id;not null;index"`
	Date      string     `gorm:"column:date;not null;index"`
	ClockIn   *time.Time `gorm:"column:clock_in"`
	ClockOut  *time.Time `gorm:"column:clock_out"`
	Value     float64    `gorm:"column:value;not null"`
	Location  string     `gorm:"column:location"`
	Notes     string     `gorm:"column:notes"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Attendance) TableName() string {
	return "attendance"
}
