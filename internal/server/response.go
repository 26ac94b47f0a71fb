package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/White-Devil2839/peerflow/internal/auth"
	"github.com/White-Devil2839/peerflow/internal/ledger"
	"github.com/White-Devil2839/peerflow/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps service and ledger errors onto HTTP statuses. The
// error message goes to the client verbatim for 4xx; 5xx responses get
// a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status >= 500 {
		slog.Error("request error", "error", err)
		message = "internal server error"
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrNotAMember),
		errors.Is(err, service.ErrGovernanceRestricted),
		errors.Is(err, service.ErrGroupPassword):
		return http.StatusForbidden

	case errors.Is(err, service.ErrDuplicateVote),
		errors.Is(err, service.ErrAlreadyDecided),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, auth.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, service.ErrTargetNotMember),
		errors.Is(err, service.ErrSelfReference),
		errors.Is(err, service.ErrRoleMismatch),
		errors.Is(err, service.ErrOverpayment),
		errors.Is(err, service.ErrInvalidVote),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrSplitMismatch),
		errors.Is(err, ledger.ErrDuplicateParticipant),
		errors.Is(err, ledger.ErrNoParticipants):
		return http.StatusBadRequest

	default:
		// Includes ledger integrity violations: a non-zero-sum group
		// is corrupted state, not a client mistake.
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(service.ErrValidation, err)
	}
	return nil
}
