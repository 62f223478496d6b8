package employee

import (
	"github.com/frahmantamala/workforce-portal/internal"
	"github.com/frahmantamala/workforce-portal/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/employee"
	"github.com/frahmantamala/workforce-portal/pkg/optional"
)

type CreateEmployeeDTO struct {
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
}

func (d *CreateEmployeeDTO) Validate() error {
	if d.Status == "" {
		d.Status = employeeDatamodel.StatusActive
	}
	v := validation.NewValidator()
	v.Field("id", d.ID).Required().MaxLength(64)
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("email", d.Email).Email()
	v.Field("joiningDate", d.JoiningDate).Date()
	v.Field("compOffBalance", d.CompOffBalance).Min(0, internal.ErrCodeInvalidValue)
	return v.Err()
}

func (d CreateEmployeeDTO) toDataModel() *employeeDatamodel.Employee {
	docs := d.Documents
	if docs == nil {
		docs = []Document{}
	}
	return &employeeDatamodel.Employee{
		ID:               d.ID,
		Name:             d.Name,
		Email:            d.Email,
		Phone:            d.Phone,
		Department:       d.Department,
		Designation:      d.Designation,
		JoiningDate:      d.JoiningDate,
		Status:           d.Status,
		Address:          d.Address,
		EmergencyContact: d.EmergencyContact,
		Documents:        docs,
		CompOffBalance:   d.CompOffBalance,
	}
}

// UpdateEmployeeDTO is a partial update. Null clears optional text fields
// and the document list; it is rejected on name, status and compOffBalance.
type UpdateEmployeeDTO struct {
	Name             optional.Field[string]     `json:"name"`
	Email            optional.Field[string]     `json:"email"`
	Phone            optional.Field[string]     `json:"phone"`
	Department       optional.Field[string]     `json:"department"`
	Designation      optional.Field[string]     `json:"designation"`
	JoiningDate      optional.Field[string]     `json:"joiningDate"`
	Status           optional.Field[string]     `json:"status"`
	Address          optional.Field[string]     `json:"address"`
	EmergencyContact optional.Field[string]     `json:"emergencyContact"`
	Documents        optional.Field[[]Document] `json:"documents"`
	CompOffBalance   optional.Field[float64]    `json:"compOffBalance"`
}

func (d UpdateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name.Value).NotNull(d.Name.Null)
	v.Field("status", d.Status.Value).NotNull(d.Status.Null)
	v.Field("compOffBalance", d.CompOffBalance.Value).NotNull(d.CompOffBalance.Null).Min(0, internal.ErrCodeInvalidValue)
	v.Field("email", d.Email.Value).Email()
	v.Field("joiningDate", d.JoiningDate.Value).Date()
	if d.Name.HasValue() {
		v.Field("name", d.Name.Value).Required().MaxLength(200)
	}
	if d.Status.HasValue() {
		v.Field("status", d.Status.Value).Required()
	}
	return v.Err()
}

func (d UpdateEmployeeDTO) apply(e *employeeDatamodel.Employee) {
	d.Name.Apply(&e.Name)
	d.Email.ApplyOrZero(&e.Email)
	d.Phone.ApplyOrZero(&e.Phone)
	d.Department.ApplyOrZero(&e.Department)
	d.Designation.ApplyOrZero(&e.Designation)
	d.JoiningDate.ApplyOrZero(&e.JoiningDate)
	d.Status.Apply(&e.Status)
	d.Address.ApplyOrZero(&e.Address)
	d.EmergencyContact.ApplyOrZero(&e.EmergencyContact)
	d.Documents.ApplyOrZero(&e.Documents)
	if e.Documents == nil {
		e.Documents = []Document{}
	}
	d.CompOffBalance.Apply(&e.CompOffBalance)
}

type ListFilter struct {
	Department string
	Status     string
}
