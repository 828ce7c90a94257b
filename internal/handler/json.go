// Package handler provides shared JSON request/response plumbing for the
// HTTP surface.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mwallace/shopfront/internal/domain"
	mw "github.com/mwallace/shopfront/internal/middleware"
)

// validate is the shared validator instance. Struct tag caches make a
// single instance cheaper than per-request construction.
var validate = validator.New(validator.WithRequiredStructEnabled())

// RespondJSON writes v as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// RespondError writes a JSON error body derived from err. The message
// comes from domain.ErrorMessage, so internal errors never leak detail
// to the client. Server errors are logged at error level.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := mw.ErrorCodeToHTTPStatus(code)

	logger := mw.GetLogger(r.Context())
	if status >= 500 {
		logger.Error("request failed", "error", err, "code", code, "status", status)
	} else {
		logger.Debug("request rejected", "error", err, "code", code, "status", status)
	}

	RespondJSON(w, status, map[string]string{"error": domain.ErrorMessage(err)})
}

// DecodeJSON decodes the request body into dst and validates it with the
// struct's validate tags. Returns an EINVALID domain error on malformed
// JSON or failed validation.
func DecodeJSON(r *http.Request, dst any) error {
	const op = "handler.DecodeJSON"

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return domain.Invalid(op, "Request body is required")
		case errors.As(err, new(*json.SyntaxError)),
			errors.As(err, new(*json.UnmarshalTypeError)):
			return domain.Invalid(op, "Request body is not valid JSON")
		default:
			return domain.Invalid(op, "Unable to read request body")
		}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.Invalid(op, validationMessage(verrs[0]))
		}
		return domain.Invalid(op, "Invalid request body")
	}

	return nil
}

// validationMessage translates the first field error into a message the
// storefront can show directly.
func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field %q is required", field)
	case "gt":
		return fmt.Sprintf("Field %q must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("Field %q must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("Field %q is invalid", field)
	}
}
