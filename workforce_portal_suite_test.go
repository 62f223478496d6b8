package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/workforce-portal/cmd"
	"github.com/frahmantamala/workforce-portal/internal"
	"github.com/frahmantamala/workforce-portal/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWorkforcePortal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "WorkforcePortal Suite")
}

func testConfig() *internal.Config {
	cfg := internal.DefaultConfig()
	cfg.Database.Path = ""
	cfg.Security.JWTSecret = "0123456789abcdef0123456789abcdef"
	cfg.Security.BCryptCost = 4
	return cfg
}

type client struct {
	handler http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func (c *client) login(email, password string) *httptest.ResponseRecorder {
	rec := c.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password})
	if rec.Code == http.StatusOK {
		c.cookies = rec.Result().Cookies()
	}
	return rec
}

func decode(rec *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
	return out
}

var _ = Describe("Workforce Portal", func() {
	var (
		app *cmd.Application
		c   *client
	)

	BeforeEach(func() {
		var err error
		app, err = cmd.NewApplication(context.Background(), testConfig(), logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		c = &client{handler: app.Handler}
	})

	AfterEach(func() {
		Expect(app.Close()).To(Succeed())
	})

	It("reports health without authentication", func() {
		rec := c.do(http.MethodGet, "/api/health", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		body := decode(rec)
		Expect(body["ok"]).To(BeTrue())
		Expect(body["ready"]).To(BeTrue())
	})

	It("logs in the seeded admin and reports the same identity from /me", func() {
		rec := c.login("admin@example.com", "admin123")
		Expect(rec.Code).To(Equal(http.StatusOK))
		login := decode(rec)
		Expect(login["success"]).To(BeTrue())
		Expect(login["token"]).NotTo(BeEmpty())
		loginUser := login["user"].(map[string]interface{})
		Expect(loginUser).NotTo(HaveKey("passwordHash"))

		me := c.do(http.MethodGet, "/api/auth/me", nil)
		Expect(me.Code).To(Equal(http.StatusOK))
		meBody := decode(me)
		Expect(meBody["authenticated"]).To(BeTrue())
		meUser := meBody["user"].(map[string]interface{})
		Expect(meUser["id"]).To(Equal(loginUser["id"]))
		Expect(meUser["role"]).To(Equal("ADMIN"))
	})

	It("answers a wrong password and an unknown email identically", func() {
		wrong := c.login("admin@example.com", "nope")
		unknown := c.login("ghost@example.com", "admin123")

		Expect(wrong.Code).To(Equal(http.StatusUnauthorized))
		Expect(unknown.Code).To(Equal(http.StatusUnauthorized))
		Expect(wrong.Body.String()).To(Equal(unknown.Body.String()))
	})

	It("tracks a time log from start to finish", func() {
		Expect(c.login("admin@example.com", "admin123").Code).To(Equal(http.StatusOK))

		created := c.do(http.MethodPost, "/api/timelogs", map[string]interface{}{
			"id":        "T-1",
			"userId":    "E-001",
			"startTime": "2025-03-03T09:00:00Z",
			"task":      "Fix bug",
			"notes":     "issue 42",
		})
		Expect(created.Code).To(Equal(http.StatusCreated))

		listed := c.do(http.MethodGet, "/api/timelogs?userId=E-001", nil)
		Expect(listed.Code).To(Equal(http.StatusOK))
		var logs []map[string]interface{}
		Expect(json.Unmarshal(listed.Body.Bytes(), &logs)).To(Succeed())
		Expect(logs).To(HaveLen(1))
		Expect(logs[0]["endTime"]).To(BeNil())

		updated := c.do(http.MethodPut, "/api/timelogs/T-1", map[string]interface{}{
			"endTime": "2025-03-03T11:00:00Z",
		})
		Expect(updated.Code).To(Equal(http.StatusOK))
		body := decode(updated)
		Expect(body["endTime"]).To(Equal("2025-03-03T11:00:00Z"))
		Expect(body["task"]).To(Equal("Fix bug"))
		Expect(body["notes"]).To(Equal("issue 42"))
	})

	It("requires a session for attendance and time logs", func() {
		rec := c.do(http.MethodGet, "/api/timelogs", nil)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(decode(rec)["message"]).To(Equal("authentication required"))

		rec = c.do(http.MethodGet, "/api/attendance", nil)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("limits directory changes to admins", func() {
		Expect(c.login("admin@example.com", "admin123").Code).To(Equal(http.StatusOK))
		rec := c.do(http.MethodPost, "/api/users", map[string]interface{}{
			"name":     "Bob",
			"email":    "bob@example.com",
			"password": "bobpass",
		})
		Expect(rec.Code).To(Equal(http.StatusCreated))

		bob := &client{handler: app.Handler}
		Expect(bob.login("bob@example.com", "bobpass").Code).To(Equal(http.StatusOK))

		Expect(bob.do(http.MethodGet, "/api/employees", nil).Code).To(Equal(http.StatusOK))
		rec = bob.do(http.MethodPost, "/api/employees", map[string]interface{}{"id": "E-200", "name": "Eve"})
		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})

	It("serves the API document", func() {
		rec := c.do(http.MethodGet, "/openapi.yml", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("/timelogs/{id}"))
	})
})

var _ = Describe("Degraded start", func() {
	It("keeps serving health but refuses database routes", func() {
		cfg := testConfig()
		// a directory cannot be opened as a database file
		cfg.Database.Path = GinkgoT().TempDir()
		cfg.Database.AllowDegraded = true

		app, err := cmd.NewApplication(context.Background(), cfg, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		defer app.Close()

		c := &client{handler: app.Handler}
		health := c.do(http.MethodGet, "/api/health", nil)
		Expect(health.Code).To(Equal(http.StatusOK))
		Expect(decode(health)["ready"]).To(BeFalse())

		rec := c.login("admin@example.com", "admin123")
		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(decode(rec)["message"]).To(Equal("database not ready"))
	})

	It("fails fast when degraded mode is off", func() {
		cfg := testConfig()
		cfg.Database.Path = GinkgoT().TempDir()

		_, err := cmd.NewApplication(context.Background(), cfg, logger.Discard())
		Expect(err).To(HaveOccurred())
	})
})
