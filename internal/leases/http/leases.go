package http

import (
	"net/http"

	"github.com/aussiebroadwan/botofarm/internal/leases/service"
	"github.com/aussiebroadwan/botofarm/pkg/httpx"
	"github.com/aussiebroadwan/botofarm/pkg/leasesdk"
)

type LeasesHandler struct {
	LeaseManager *service.LeaseManager
}

// HandleLock acquires the lease on an account
//
//	@Summary		Lock an account
//	@Description	Acquires the lease. Fails with 409 while another caller holds an unexpired lease.
//	@Tags			Leases
//	@Produce		json
//	@Param			id	path		string					true	"Account ID"
//	@Success		200	{object}	leasesdk.LockResponse	"Lock acquired"
//	@Failure		404	{object}	leasesdk.ErrorResponse	"Account not found"
//	@Failure		409	{object}	leasesdk.ErrorResponse	"Account already locked"
//	@Failure		429	{object}	leasesdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		503	{object}	leasesdk.ErrorResponse	"Store unavailable"
//	@Router			/api/users/{id}/lock [post].
func (h *LeasesHandler) HandleLock(w http.ResponseWriter, r *http.Request) {
	acc, err := h.LeaseManager.Acquire(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, leasesdk.LockResponse{
		UserID:   acc.ID,
		Locked:   true,
		LockTime: acc.LeaseUntil,
	})
}

// HandleUnlock releases the lease on an account
//
//	@Summary		Unlock an account
//	@Description	Releases the lease. Unlocking an account that is not locked succeeds.
//	@Tags			Leases
//	@Produce		json
//	@Param			id	path		string					true	"Account ID"
//	@Success		200	{object}	leasesdk.LockResponse	"Lock released"
//	@Failure		404	{object}	leasesdk.ErrorResponse	"Account not found"
//	@Failure		429	{object}	leasesdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		503	{object}	leasesdk.ErrorResponse	"Store unavailable"
//	@Router			/api/users/{id}/unlock [post].
func (h *LeasesHandler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	acc, err := h.LeaseManager.Release(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, leasesdk.LockResponse{
		UserID:   acc.ID,
		Locked:   false,
		LockTime: nil,
	})
}
