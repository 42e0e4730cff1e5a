package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/botofarm/internal/leases/service"
	"github.com/aussiebroadwan/botofarm/pkg/httpx"
	"github.com/aussiebroadwan/botofarm/pkg/leasesdk"
	"github.com/aussiebroadwan/botofarm/pkg/slogx"
)

// writeServiceError maps a LeaseManager error onto a status and error body.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAccountExists):
		httpx.WriteError(w, http.StatusConflict,
			leasesdk.ErrorCodeAccountExists, "an account with this login already exists")
	case errors.Is(err, service.ErrAccountNotFound):
		httpx.WriteError(w, http.StatusNotFound,
			leasesdk.ErrorCodeAccountNotFound, "account not found")
	case errors.Is(err, service.ErrAccountLeased):
		httpx.WriteError(w, http.StatusConflict,
			leasesdk.ErrorCodeAccountLeased, "account is already locked")
	case errors.Is(err, service.ErrInvalidAccount):
		writeValidationError(w, err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		slogx.FromContext(r.Context()).Error("store unavailable", "error", err)
		httpx.WriteError(w, http.StatusServiceUnavailable,
			leasesdk.ErrorCodeStoreUnavailable, "the account store is unavailable, try again later")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			leasesdk.ErrorCodeServerError, "internal server error")
	}
}

func writeValidationError(w http.ResponseWriter, description string) {
	httpx.WriteError(w, http.StatusUnprocessableEntity, leasesdk.ErrorCodeValidation, description)
}
