package user

import (
	"context"
	"errors"
	"testing"

	"github.com/frahmantamala/workforce-portal/internal"
	userDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-portal/pkg/logger"
	"github.com/frahmantamala/workforce-portal/pkg/optional"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

// Mock repository keyed by id
type mockRepository struct {
	rows    map[string]*userDatamodel.User
	created []*userDatamodel.User
	err     error
}

func newMockRepository() *mockRepository {
	empID := "E-001"
	return &mockRepository{
		rows: map[string]*userDatamodel.User{
			"u1": {ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "$2a$04$hash", Role: userDatamodel.RoleEmployee, EmployeeID: &empID},
		},
	}
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]*userDatamodel.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []*userDatamodel.User{}
	for _, u := range m.rows {
		if filter.Email != "" && u.Email != filter.Email {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	if u, ok := m.rows[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[u.ID]; ok {
		return ErrDuplicateID
	}
	m.rows[u.ID] = u
	m.created = append(m.created, u)
	return nil
}

func (m *mockRepository) Update(ctx context.Context, id string, apply func(u *userDatamodel.User) error) (*userDatamodel.User, error) {
	u, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	if err := apply(&cp); err != nil {
		return nil, err
	}
	m.rows[id] = &cp
	return &cp, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

type prefixHasher struct{}

func (prefixHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

var _ = ginkgo.Describe("UserService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		mockRepo = newMockRepository()
		service = NewService(mockRepo, prefixHasher{}, logger.Discard())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should hash the password, lower-case the email and default the role", func() {
			// When
			u, err := service.Create(ctx, CreateUserDTO{Name: "Bob", Email: "  Bob@Example.COM ", Password: "pw"})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.ID).ToNot(gomega.BeEmpty())
			gomega.Expect(u.Email).To(gomega.Equal("bob@example.com"))
			gomega.Expect(u.Role).To(gomega.Equal(userDatamodel.RoleEmployee))
			gomega.Expect(mockRepo.created[0].PasswordHash).To(gomega.Equal("hashed:pw"))
		})

		ginkgo.It("should reject missing required fields with a field list", func() {
			// When
			_, err := service.Create(ctx, CreateUserDTO{Name: "Bob"})

			// Then
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
			details := appErr.Details.(internal.ValidationErrors)
			gomega.Expect(details.Errors).To(gomega.HaveLen(2))
			gomega.Expect(details.Errors[0].Field).To(gomega.Equal("email"))
			gomega.Expect(details.Errors[1].Field).To(gomega.Equal("password"))
		})

		ginkgo.It("should reject unknown roles", func() {
			_, err := service.Create(ctx, CreateUserDTO{Name: "Bob", Email: "b@example.com", Password: "pw", Role: "ROOT"})
			gomega.Expect(err).To(gomega.HaveOccurred())
			appErr, _ := internal.IsAppError(err)
			gomega.Expect(appErr.GetDetailedMessage()).To(gomega.ContainSubstring("role must be one of"))
		})

		ginkgo.It("should surface duplicate ids as a conflict", func() {
			_, err := service.Create(ctx, CreateUserDTO{ID: "u1", Name: "Bob", Email: "b@example.com", Password: "pw"})
			gomega.Expect(errors.Is(err, ErrDuplicateID)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should leave every field unchanged for an empty payload", func() {
			// Given
			before, err := service.Get(ctx, "u1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			after, err := service.Update(ctx, "u1", UpdateUserDTO{})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(after).To(gomega.Equal(before))
		})

		ginkgo.It("should clear the employee link on an explicit null", func() {
			u, err := service.Update(ctx, "u1", UpdateUserDTO{EmployeeID: optional.Null[string]()})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.EmployeeID).To(gomega.BeNil())
		})

		ginkgo.It("should reject null on a required field", func() {
			_, err := service.Update(ctx, "u1", UpdateUserDTO{Name: optional.Null[string]()})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})

		ginkgo.It("should re-hash a new password", func() {
			_, err := service.Update(ctx, "u1", UpdateUserDTO{Password: optional.Of("n3w")})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.rows["u1"].PasswordHash).To(gomega.Equal("hashed:n3w"))
		})

		ginkgo.It("should return not found for unknown ids", func() {
			_, err := service.Update(ctx, "missing", UpdateUserDTO{Name: optional.Of("x")})
			gomega.Expect(errors.Is(err, ErrNotFound)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.It("should return an empty slice, not nil, when nothing matches", func() {
			users, err := service.List(ctx, ListFilter{Role: userDatamodel.RoleAdmin})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(users).ToNot(gomega.BeNil())
			gomega.Expect(users).To(gomega.BeEmpty())
		})

		ginkgo.It("should match email filters case-insensitively", func() {
			users, err := service.List(ctx, ListFilter{Email: "ALICE@example.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(users).To(gomega.HaveLen(1))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should succeed for ids that do not exist", func() {
			gomega.Expect(service.Delete(ctx, "missing")).To(gomega.Succeed())
			gomega.Expect(mockRepo.rows).To(gomega.HaveLen(1))
		})
	})
})
