package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jpvieira/borga/internal/errs"
)

// writeJSON renders a JSON body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// errorBody is the wire shape of every failure response.
type errorBody struct {
	Cause *errs.Error `json:"cause"`
}

// writeError translates a taxonomy error to its status code and renders
// it as {"cause": ...}. Non-taxonomy errors become a generic 500 so
// internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		slog.Error("Unclassified error", "error", err)
		e = errs.New("internal server error")
	}
	writeJSON(w, statusFor(e.Kind), errorBody{Cause: e})
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindAlreadyExists:
		return http.StatusConflict
	case errs.KindBadRequest:
		return http.StatusBadRequest
	case errs.KindUnauthenticated:
		return http.StatusUnauthorized
	case errs.KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the request body into dst, rejecting unknown fields.
// Decode failures surface as BAD_REQUEST with a field→reason entry so
// they render the same way validation failures do.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return errs.BadRequest(map[string]string{field: "invalid type"})
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return errs.BadRequest(map[string]string{field: "unknown property"})
	default:
		return errs.BadRequest(map[string]string{"body": "malformed JSON"})
	}
}

// bearerToken extracts the bearer token from the Authorization header.
// Returns "" when absent or malformed; authentication policy lives in
// the service layer.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
