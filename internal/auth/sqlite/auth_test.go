package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/frahmantamala/workforce-portal/internal/auth"
	authSqlite "github.com/frahmantamala/workforce-portal/internal/auth/sqlite"
	userDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"github.com/frahmantamala/workforce-portal/internal/user"
	"github.com/frahmantamala/workforce-portal/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestAuthSqlite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth SQLite Suite")
}

var _ = Describe("Auth SQLite Repository", func() {
	var (
		ctx  context.Context
		s    *store.Store
		repo *authSqlite.Repository
		svc  *auth.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		s = store.New(filepath.Join(GinkgoT().TempDir(), "portal.db"), logger.Discard())
		Expect(s.Load(ctx)).To(Succeed())

		Expect(s.Mutate(ctx, func(tx *gorm.DB) error {
			return tx.Create([]*userDatamodel.User{
				{ID: "a", Name: "Admin", Email: "admin@example.com", PasswordHash: "admin123", Role: userDatamodel.RoleAdmin},
				{ID: "b", Name: "Bob", Email: "bob@example.com", PasswordHash: "$2a$04$alreadyhashedvalue", Role: userDatamodel.RoleEmployee},
			}).Error
		})).To(Succeed())

		repo = authSqlite.NewRepository(s)
		svc = auth.NewService(repo, auth.NewJWTTokenGenerator("0123456789abcdef0123456789abcdef", 0), auth.NewPasswordHasher(bcrypt.MinCost), logger.Discard())
	})

	AfterEach(func() {
		Expect(s.Close()).To(Succeed())
	})

	It("finds users by email and id", func() {
		u, err := repo.FindByEmail(ctx, "bob@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(u.ID).To(Equal("b"))

		_, err = repo.FindByID(ctx, "zzz")
		Expect(errors.Is(err, user.ErrNotFound)).To(BeTrue())
	})

	It("migrates legacy passwords with a single persist and then does nothing", func() {
		before := s.Stats().PersistCount

		n, err := svc.MigrateLegacyPasswords(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(s.Stats().PersistCount).To(Equal(before + 1))

		n, err = svc.MigrateLegacyPasswords(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
		Expect(s.Stats().PersistCount).To(Equal(before + 1))

		admin, err := repo.FindByID(ctx, "a")
		Expect(err).NotTo(HaveOccurred())
		Expect(auth.IsHashed(admin.PasswordHash)).To(BeTrue())

		bob, err := repo.FindByID(ctx, "b")
		Expect(err).NotTo(HaveOccurred())
		Expect(bob.PasswordHash).To(Equal("$2a$04$alreadyhashedvalue"))

		_, err = svc.Login(ctx, auth.LoginDTO{Email: "admin@example.com", Password: "admin123"})
		Expect(err).NotTo(HaveOccurred())
	})
})
