package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/workforce-portal/internal"
	"github.com/frahmantamala/workforce-portal/internal/transport"
	"github.com/frahmantamala/workforce-portal/pkg/logger"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("Handler", func() {
	var (
		handler  *Handler
		mockRepo *mockUserRepository
		echo     http.Handler
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		svc := NewService(mockRepo, NewJWTTokenGenerator(testSecret, 7*24*time.Hour), NewPasswordHasher(bcrypt.MinCost), logger.Discard())
		handler = NewHandler(transport.NewBaseHandler(logger.Discard()), svc, false)

		echo = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := internal.IdentityFromContext(r.Context())
			w.Write([]byte(id.UserID + "/" + id.Role))
		}))
	})

	login := func(email, password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(LoginDTO{Email: email, Password: password})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		handler.Handle(handler.Login).ServeHTTP(rec, req)
		return rec
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("should set an http-only lax cookie and return the token in the body", func() {
			rec := login("admin@example.com", "correct_password")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			cookies := rec.Result().Cookies()
			gomega.Expect(cookies).To(gomega.HaveLen(1))
			gomega.Expect(cookies[0].Name).To(gomega.Equal(CookieName))
			gomega.Expect(cookies[0].HttpOnly).To(gomega.BeTrue())
			gomega.Expect(cookies[0].SameSite).To(gomega.Equal(http.SameSiteLaxMode))
			gomega.Expect(cookies[0].Path).To(gomega.Equal("/"))

			var resp map[string]interface{}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(gomega.Succeed())
			gomega.Expect(resp["success"]).To(gomega.BeTrue())
			gomega.Expect(resp["token"]).To(gomega.Equal(cookies[0].Value))
			gomega.Expect(resp["user"]).ToNot(gomega.HaveKey("passwordHash"))
			gomega.Expect(rec.Body.String()).ToNot(gomega.ContainSubstring("$2a$"))
		})

		ginkgo.It("should answer 401 with the same body for unknown email and wrong password", func() {
			unknown := login("nobody@example.com", "correct_password")
			wrong := login("admin@example.com", "nope")

			gomega.Expect(unknown.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(wrong.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(unknown.Body.String()).To(gomega.Equal(wrong.Body.String()))
		})

		ginkgo.It("should reject malformed JSON with 400", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
			handler.Handle(handler.Login).ServeHTTP(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should expire the cookie", func() {
			rec := httptest.NewRecorder()
			handler.Handle(handler.Logout).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Result().Cookies()[0].MaxAge).To(gomega.BeNumerically("<", 0))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"success":true`))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var token string

		ginkgo.BeforeEach(func() {
			rec := login("worker@example.com", "correct_password")
			token = rec.Result().Cookies()[0].Value
		})

		ginkgo.It("should accept the cookie", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/timelogs", nil)
			req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
			rec := httptest.NewRecorder()

			echo.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.Equal("2/EMPLOYEE"))
		})

		ginkgo.It("should fall back to the bearer header", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/timelogs", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			echo.ServeHTTP(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should answer 401 authentication required without a token", func() {
			rec := httptest.NewRecorder()
			echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/timelogs", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("authentication required"))
		})

		ginkgo.It("should answer 401 invalid or expired token for garbage", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/timelogs", nil)
			req.Header.Set("Authorization", "Bearer not-a-jwt")
			rec := httptest.NewRecorder()

			echo.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("invalid or expired token"))
		})
	})

	ginkgo.Describe("Me", func() {
		ginkgo.It("should return the live user behind the token", func() {
			token := login("admin@example.com", "correct_password").Result().Cookies()[0].Value
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
			rec := httptest.NewRecorder()

			handler.AuthMiddleware(handler.Handle(handler.Me)).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var resp MeResponse
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(gomega.Succeed())
			gomega.Expect(resp.Authenticated).To(gomega.BeTrue())
			gomega.Expect(resp.User.ID).To(gomega.Equal("1"))
		})
	})
})
