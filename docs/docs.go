// Package docs registers the OpenAPI document served under /swagger.
// Regenerate swagger.json with `swag init -g cmd/server/main.go -o docs --outputTypes json`.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag/v2"
)

//go:embed swagger.json
var document string

type swaggerDoc struct{}

// ReadDoc implements swag.Swagger
func (swaggerDoc) ReadDoc() string {
	return document
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
