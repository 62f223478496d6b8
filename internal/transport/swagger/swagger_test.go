package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/workforce-portal/internal/transport/swagger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

var _ = Describe("Docs", func() {
	var docs *swagger.Docs

	BeforeEach(func() {
		var err error
		docs, err = swagger.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
	})

	It("documents every resource", func() {
		Expect(docs.Version()).To(Equal("1.0.0"))
		Expect(docs.Paths()).To(ContainElements(
			"/health",
			"/auth/login",
			"/auth/me",
			"/users/{id}",
			"/employees/{id}",
			"/attendance/export",
			"/timelogs/{id}",
		))
	})

	It("serves the raw document as yaml", func() {
		rec := httptest.NewRecorder()
		docs.ServeDocument(rec, httptest.NewRequest(http.MethodGet, swagger.DocumentPath, nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/yaml"))
		Expect(rec.Body.String()).To(HavePrefix("openapi: 3.0.3"))
	})
})
