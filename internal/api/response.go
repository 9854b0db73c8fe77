package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cresolva/notify-relay/internal/relay"
)

// respondJSON writes a JSON response with the given status code and data.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response with the given status and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondRelayError maps a relay error to its HTTP status and body. Errors
// carrying transport detail expose it in a "details" field; anything that is
// not a relay error is an unexpected server failure.
func respondRelayError(w http.ResponseWriter, err error) {
	re, ok := relay.AsError(err)
	if !ok {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Internal server error",
			"details": err.Error(),
		})
		return
	}

	if re.Detail != "" {
		respondJSON(w, re.HTTPStatus(), map[string]string{
			"error":   re.Message,
			"details": re.Detail,
		})
		return
	}
	respondError(w, re.HTTPStatus(), re.Message)
}

// decodeJSON decodes the request body into dst. A syntactically invalid body
// is a malformed-request error; a body with wrong field types (e.g. a number
// where a string belongs) fails validation with the endpoint's
// required-fields message, matching the boundary contract for non-string
// fields.
func decodeJSON(r *http.Request, dst interface{}, requiredMsg string) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &relay.Error{Kind: relay.KindValidation, Message: requiredMsg, Err: err}
		}
		return &relay.Error{Kind: relay.KindMalformed, Message: "Invalid JSON", Err: err}
	}
	return nil
}
