package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frahmantamala/workforce-portal/internal/attendance"
	attendanceSqlite "github.com/frahmantamala/workforce-portal/internal/attendance/sqlite"
	"github.com/frahmantamala/workforce-portal/internal/auth"
	authSqlite "github.com/frahmantamala/workforce-portal/internal/auth/sqlite"
	"github.com/frahmantamala/workforce-portal/internal/employee"
	employeeSqlite "github.com/frahmantamala/workforce-portal/internal/employee/sqlite"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"github.com/frahmantamala/workforce-portal/internal/timelog"
	timelogSqlite "github.com/frahmantamala/workforce-portal/internal/timelog/sqlite"
	"github.com/frahmantamala/workforce-portal/internal/transport"
	"github.com/frahmantamala/workforce-portal/internal/transport/rest"
	"github.com/frahmantamala/workforce-portal/internal/user"
	userSqlite "github.com/frahmantamala/workforce-portal/internal/user/sqlite"
	"github.com/frahmantamala/workforce-portal/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

const secret = "0123456789abcdef0123456789abcdef"

func newRouter(s *store.Store, cfg rest.RouterConfig) (*chi.Mux, *user.Service) {
	lg := logger.Discard()
	base := transport.NewBaseHandler(lg)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	users := user.NewService(userSqlite.NewUserRepository(s), hasher, lg)
	authSvc := auth.NewService(authSqlite.NewRepository(s), auth.NewJWTTokenGenerator(secret, time.Hour), hasher, lg)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, s, rest.Handlers{
		Auth:       auth.NewHandler(base, authSvc, false),
		User:       user.NewHandler(base, users),
		Employee:   employee.NewHandler(base, employee.NewService(employeeSqlite.NewEmployeeRepository(s), lg)),
		Attendance: attendance.NewHandler(base, attendance.NewService(attendanceSqlite.NewAttendanceRepository(s), lg)),
		TimeLog:    timelog.NewHandler(base, timelog.NewService(timelogSqlite.NewTimeLogRepository(s), lg)),
	}, cfg, lg)
	return router, users
}

func call(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

var _ = Describe("Router", func() {
	var s *store.Store

	BeforeEach(func() {
		var err error
		s, err = store.OpenMemory(context.Background(), logger.Discard())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(s.Close()).To(Succeed())
	})

	Context("with an open directory", func() {
		It("serves users and employees without a session", func() {
			router, _ := newRouter(s, rest.RouterConfig{ProtectDirectory: false})

			rec := call(router, http.MethodPost, "/api/employees", `{"id":"E-1","name":"Ann"}`, "")
			Expect(rec.Code).To(Equal(http.StatusCreated))

			rec = call(router, http.MethodGet, "/api/users", "", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`[]`))
		})
	})

	Context("with a protected directory", func() {
		It("needs a session to read users", func() {
			router, _ := newRouter(s, rest.RouterConfig{ProtectDirectory: true})

			rec := call(router, http.MethodGet, "/api/users", "", "")
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	It("routes the attendance export ahead of the id route", func() {
		router, users := newRouter(s, rest.RouterConfig{ProtectDirectory: true})
		_, err := users.Create(context.Background(), user.CreateUserDTO{
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "secret",
		})
		Expect(err).NotTo(HaveOccurred())

		login := call(router, http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"secret"}`, "")
		Expect(login.Code).To(Equal(http.StatusOK))
		var session auth.LoginResponse
		Expect(json.Unmarshal(login.Body.Bytes(), &session)).To(Succeed())

		rec := call(router, http.MethodGet, "/api/attendance/export", "", session.Token)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring(".xlsx"))
	})

	It("answers preflight requests from allowed origins", func() {
		router, _ := newRouter(s, rest.RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}})

		req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
	})

	It("refuses database routes once the store is closed", func() {
		router, _ := newRouter(s, rest.RouterConfig{})
		Expect(s.Close()).To(Succeed())

		rec := call(router, http.MethodGet, "/api/timelogs", "", "")
		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))

		health := call(router, http.MethodGet, "/api/health", "", "")
		Expect(health.Code).To(Equal(http.StatusOK))
		Expect(health.Body.String()).To(ContainSubstring(`"ready":false`))
	})

	It("clears the session cookie while the store is down", func() {
		router, _ := newRouter(s, rest.RouterConfig{})
		Expect(s.Close()).To(Succeed())

		rec := call(router, http.MethodPost, "/api/auth/logout", "", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		cookies := rec.Result().Cookies()
		Expect(cookies).To(HaveLen(1))
		Expect(cookies[0].Value).To(BeEmpty())
		Expect(cookies[0].MaxAge).To(BeNumerically("<", 0))

		login := call(router, http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"secret"}`, "")
		Expect(login.Code).To(Equal(http.StatusServiceUnavailable))
	})
})
