// Package rest exposes the application services over HTTP.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
)

type errorBody struct {
	Error   string   `json:"error"`
	Issues  []string `json:"issues,omitempty"`
	Details any      `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps domain error kinds onto HTTP status codes. Anything
// unclassified is a 500 with a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Message, Issues: verr.Issues})
		return
	}

	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: nf.Error()})
		return
	}

	var insufficient *errs.InsufficientPaymentError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error: insufficient.Error(),
			Details: map[string]string{
				"required":  insufficient.Required.String(),
				"provided":  insufficient.Provided.String(),
				"shortfall": insufficient.Shortfall().String(),
			},
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.Validationf("invalid request body: %v", err)
	}
	return nil
}
