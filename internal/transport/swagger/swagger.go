package swagger

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/frahmantamala/expense-bot/api"
	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

const SpecURL = "/openapi.yml"

// Spec is a validated OpenAPI document together with its source bytes.
type Spec struct {
	Doc *openapi3.T
	raw []byte
}

// Load reads the document at path, or the embedded one when path is empty,
// and validates it.
func Load(ctx context.Context, path string) (*Spec, error) {
	raw := api.OpenAPI
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read openapi spec: %w", err)
		}
		raw = b
	}

	doc, err := openapi3.NewLoader().LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("parse openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}

	return &Spec{Doc: doc, raw: raw}, nil
}

func (s *Spec) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(s.raw)
}

func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(SpecURL),
	)
}
