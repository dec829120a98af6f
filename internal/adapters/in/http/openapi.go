package http

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

// OpenAPIValidator rejects requests that do not match the contract in spec
// before they reach a handler. basePath is stripped before route lookup, so
// the document may declare its paths relative to the server URL.
//
// Authentication is left to JWTAuth; the validator only checks shape.
func OpenAPIValidator(spec []byte, basePath string) (echo.MiddlewareFunc, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	doc.Servers = nil
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			probe := req.Clone(req.Context())
			probe.URL.Path = strings.TrimPrefix(req.URL.Path, basePath)
			probe.URL.RawPath = ""

			route, pathParams, err := router.FindRoute(probe)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					// echo answers these itself.
					return next(c)
				}
				return errs.NewValueIsInvalidErrorWithCause("route", err)
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    probe,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			// ValidateRequest drains the body and leaves a fresh reader on probe.
			req.Body = probe.Body
			if err != nil {
				return errs.NewValueIsInvalidErrorWithCause("request", compactValidationError(err))
			}
			return next(c)
		}
	}, nil
}

// compactValidationError drops the schema dump kin-openapi appends to
// request errors.
func compactValidationError(err error) error {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		reason := reqErr.Reason
		if reason == "" && reqErr.Err != nil {
			var schemaErr *openapi3.SchemaError
			if errors.As(reqErr.Err, &schemaErr) {
				reason = schemaErr.Reason
			} else {
				reason = reqErr.Err.Error()
			}
		}
		if reqErr.Parameter != nil {
			return fmt.Errorf("parameter %q: %s", reqErr.Parameter.Name, reason)
		}
		if reason != "" {
			return errors.New(reason)
		}
	}
	return err
}
