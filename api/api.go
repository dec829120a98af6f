// Package api embeds the OpenAPI contract served on /api/v1/openapi.yml and
// used to validate incoming requests.
package api

//go:generate go tool oapi-codegen -config oapi-codegen.yaml openapi.yml

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed openapi.yml
var Spec []byte

// BasePath is the server URL declared in Spec.
const BasePath = "/api/v1"

// SwaggerInfo exposes Spec to the swagger UI handler under the default
// instance name, so /swagger/doc.json serves the same contract.
var SwaggerInfo = &swag.Spec{
	BasePath:         BasePath,
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  string(Spec),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
