package employee

import (
	"time"

	"github.com/frahmantamala/workforce-portal/internal"
	employeeDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/employee"
)

type Document = employeeDatamodel.Document

type Employee struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Department       string     `json:"department"`
	Designation      string     `json:"designation"`
	JoiningDate      string     `json:"joiningDate"`
	Status           string     `json:"status"`
	Address          string     `json:"address"`
	EmergencyContact string     `json:"emergencyContact"`
	Documents        []Document `json:"documents"`
	CompOffBalance   float64    `json:"compOffBalance"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

var (
	ErrNotFound    = internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound)
	ErrDuplicateID = internal.NewConflictError("employee id already exists", internal.ErrCodeDuplicateID)
)

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	docs := e.Documents
	if docs == nil {
		docs = []Document{}
	}
	return &Employee{
		ID:               e.ID,
		Name:             e.Name,
		Email:            e.Email,
		Phone:            e.Phone,
		Department:       e.Department,
		Designation:      e.Designation,
		JoiningDate:      e.JoiningDate,
		Status:           e.Status,
		Address:          e.Address,
		EmergencyContact: e.EmergencyContact,
		Documents:        docs,
		CompOffBalance:   e.CompOffBalance,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
