package http

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
	"github.com/aussiebroadwan/botofarm/internal/leases/service"
	"github.com/aussiebroadwan/botofarm/pkg/httpx"
	"github.com/aussiebroadwan/botofarm/pkg/leasesdk"
	"github.com/aussiebroadwan/botofarm/pkg/slogx"
	"github.com/google/uuid"
)

type AccountsHandler struct {
	LeaseManager *service.LeaseManager
}

// HandleCreate registers an account
//
//	@Summary		Register an account
//	@Description	Creates an unlocked account. The login must be an email address and unique.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		leasesdk.CreateAccountRequest	true	"Account to register"
//	@Success		201		{object}	leasesdk.Account				"Registered account"
//	@Failure		409		{object}	leasesdk.ErrorResponse			"Login already exists"
//	@Failure		422		{object}	leasesdk.ErrorResponse			"Validation failed"
//	@Failure		429		{object}	leasesdk.ErrorResponse			"Rate limit exceeded"
//	@Failure		503		{object}	leasesdk.ErrorResponse			"Store unavailable"
//	@Router			/api/users [post].
func (h *AccountsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req leasesdk.CreateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid registration body", "error", err)
		writeValidationError(w, err.Error())
		return
	}

	reg, problem := validateCreate(req)
	if problem != "" {
		log.Warn("registration rejected", "reason", problem)
		writeValidationError(w, problem)
		return
	}

	acc, err := h.LeaseManager.Register(r.Context(), reg)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccount(acc))
}

// HandleList lists accounts
//
//	@Summary		List accounts
//	@Description	Returns accounts oldest first. Every query parameter is optional and they combine with AND.
//	@Tags			Accounts
//	@Produce		json
//	@Param			project_id	query		string	false	"Project UUID"
//	@Param			env			query		string	false	"Environment"	Enums(prod, preprod, stage)
//	@Param			domain		query		string	false	"Domain class"	Enums(canary, regular)
//	@Param			is_locked	query		bool	false	"Lock state"
//	@Success		200			{array}		leasesdk.Account
//	@Failure		422			{object}	leasesdk.ErrorResponse	"Invalid filter"
//	@Failure		503			{object}	leasesdk.ErrorResponse	"Store unavailable"
//	@Router			/api/users [get].
func (h *AccountsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, problem := parseFilter(r)
	if problem != "" {
		slogx.FromContext(r.Context()).Warn("invalid account filter", "reason", problem)
		writeValidationError(w, problem)
		return
	}

	accounts, err := h.LeaseManager.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]leasesdk.Account, len(accounts))
	for i, a := range accounts {
		out[i] = toAccount(a)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// validateCreate returns the registration or a description of the first
// problem found.
func validateCreate(req leasesdk.CreateAccountRequest) (service.Registration, string) {
	login := strings.TrimSpace(req.Login)
	if login == "" {
		return service.Registration{}, "login is required"
	}
	// Bare addresses only, no display names
	if addr, err := mail.ParseAddress(login); err != nil || addr.Address != login {
		return service.Registration{}, "login must be a valid email address"
	}
	if req.Password == "" {
		return service.Registration{}, "password is required"
	}
	if req.ProjectID == uuid.Nil {
		return service.Registration{}, "project_id is required"
	}
	env, err := domain.ParseEnvironment(req.Env)
	if err != nil {
		return service.Registration{}, "env must be one of prod, preprod, stage"
	}
	class, err := domain.ParseDomainClass(req.Domain)
	if err != nil {
		return service.Registration{}, "domain must be one of canary, regular"
	}

	return service.Registration{
		Login:     login,
		Password:  req.Password,
		ProjectID: req.ProjectID,
		Env:       env,
		Domain:    class,
	}, ""
}

func parseFilter(r *http.Request) (domain.AccountFilter, string) {
	var (
		f domain.AccountFilter
		q = r.URL.Query()
	)

	if v := q.Get("project_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, "project_id must be a UUID"
		}
		f.ProjectID = &id
	}
	if v := q.Get("env"); v != "" {
		env, err := domain.ParseEnvironment(v)
		if err != nil {
			return f, "env must be one of prod, preprod, stage"
		}
		f.Env = &env
	}
	if v := q.Get("domain"); v != "" {
		class, err := domain.ParseDomainClass(v)
		if err != nil {
			return f, "domain must be one of canary, regular"
		}
		f.Domain = &class
	}
	if v := q.Get("is_locked"); v != "" {
		locked, ok := parseQueryBool(v)
		if !ok {
			return f, "is_locked must be a boolean"
		}
		f.Leased = &locked
	}
	return f, ""
}

// parseQueryBool accepts the spellings clients already send for flags.
func parseQueryBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	}
	return false, false
}

func toAccount(a domain.Account) leasesdk.Account {
	return leasesdk.Account{
		ID:        a.ID,
		Login:     a.Login,
		ProjectID: a.ProjectID,
		Env:       a.Env.String(),
		Domain:    a.Domain.String(),
		CreatedAt: a.CreatedAt,
		LockTime:  a.LeaseUntil,
		IsLocked:  a.IsLeased(),
	}
}
