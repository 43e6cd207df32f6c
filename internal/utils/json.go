package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DecodeJSONRequest strictly decodes the request body into dst.
// Unknown fields are rejected so typos surface as 400s instead of
// silently validating an empty value.
func DecodeJSONRequest(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
