/*
Package req binds incoming HTTP request bodies to Go structs.

It enforces a JSON Content-Type, rejects unknown fields, and reports every
failure through the errs code taxonomy.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"friendlink/internal/pkg/errs"
)

// BindJSON decodes the request body into dst, requiring a JSON Content-Type
// and a body that contains exactly one JSON document with no unknown fields.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// BindJSONIfPresent behaves like BindJSON but treats an absent or empty body
// as valid, leaving dst untouched. Endpoints with fully optional inputs use it.
func BindJSONIfPresent(r *http.Request, dst any) *errs.CustomError {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}

	return BindJSON(r, dst)
}
