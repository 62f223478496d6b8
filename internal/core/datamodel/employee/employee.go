package employee

import "time"

const StatusActive = "ACTIVE"

type Document struct {
	Name       string     `json:"name"`
	Type       string     `json:"type,omitempty"`
	URL        string     `json:"url,omitempty"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
}

type Employee struct {
	ID               string     `gorm:"column:id;primaryKey"`
	Name             string     `gorm:"column:name;not null"`
	Email            string     `gorm:"column:email"`
	Phone            string     `gorm:"column:phone"`
	Department       string     `gorm:"column:department"`
	Designation      string     `gorm:"column:designation"`
	JoiningDate      string     `gorm:"column:joining_date"`
	Status           string     `gorm:"column:status;not null;default:ACTIVE"`
	Address          string     `gorm:"column:address"`
	EmergencyContact string     `gorm:"column:emergency_contact"`
	Documents        []Document `gorm:"column:documents;serializer:json"`
	CompOffBalance   float64    `gorm:"column:comp_off_balance;not null;default:0"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
