package handlers

import (
	"encoding/json"
	"net/http"
)

// decodeStrict parses a JSON body rejecting unknown fields, the Go
// counterpart of a schema with additionalProperties:false. Any extra field is
// a bad request, never silently ignored.
func decodeStrict(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
