package swagger

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.yml
var document []byte

// DocumentPath is where the raw OpenAPI document is served.
const DocumentPath = "/openapi.yml"

// Docs serves the embedded OpenAPI document and the Swagger UI pointing at it.
type Docs struct {
	doc *openapi3.T
	raw []byte
}

// Load parses and validates the embedded document so a broken document fails at boot.
func Load(ctx context.Context) (*Docs, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return &Docs{doc: doc, raw: document}, nil
}

// Version returns info.version of the document.
func (d *Docs) Version() string {
	return d.doc.Info.Version
}

// Paths lists every documented path template.
func (d *Docs) Paths() []string {
	return d.doc.Paths.InMatchingOrder()
}

func (d *Docs) ServeDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(d.raw)
}

func (d *Docs) UI() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(DocumentPath),
	)
}
