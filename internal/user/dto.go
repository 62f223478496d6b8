package user

import (
	"github.com/frahmantamala/workforce-portal/internal"
	"github.com/frahmantamala/workforce-portal/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-portal/pkg/optional"
)

type CreateUserDTO struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role,omitempty"`
	EmployeeID *string `json:"employeeId,omitempty"`
}

func (d *CreateUserDTO) Validate() error {
	if d.Role == "" {
		d.Role = userDatamodel.RoleEmployee
	}
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required()
	v.Field("role", d.Role).OneOf(internal.ErrCodeInvalidRole, userDatamodel.RoleAdmin, userDatamodel.RoleEmployee)
	return v.Err()
}

// UpdateUserDTO is a partial update. Absent keys keep the stored value.
type UpdateUserDTO struct {
	Name       optional.Field[string] `json:"name"`
	Email      optional.Field[string] `json:"email"`
	Password   optional.Field[string] `json:"password"`
	Role       optional.Field[string] `json:"role"`
	EmployeeID optional.Field[string] `json:"employeeId"`
}

func (d UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name.Value).NotNull(d.Name.Null)
	v.Field("email", d.Email.Value).NotNull(d.Email.Null).Email()
	v.Field("password", d.Password.Value).NotNull(d.Password.Null)
	v.Field("role", d.Role.Value).NotNull(d.Role.Null)
	if d.Name.HasValue() {
		v.Field("name", d.Name.Value).Required()
	}
	if d.Email.HasValue() {
		v.Field("email", d.Email.Value).Required()
	}
	if d.Password.HasValue() {
		v.Field("password", d.Password.Value).Required()
	}
	if d.Role.HasValue() {
		v.Field("role", d.Role.Value).OneOf(internal.ErrCodeInvalidRole, userDatamodel.RoleAdmin, userDatamodel.RoleEmployee)
	}
	return v.Err()
}

type ListFilter struct {
	Role  string
	Email string
}
