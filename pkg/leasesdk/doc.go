/*
Package leasesdk is a client for the account lease service.

Accounts are leasable automation identities scoped to a project, an
environment (prod, preprod, stage) and a domain class (canary, regular).
A caller locks an account before using it and unlocks it afterwards:

	client := leasesdk.NewClient("http://localhost:8000")

	acc, err := client.CreateAccount(ctx, leasesdk.CreateAccountRequest{
		Login:     "bot-001@example.com",
		Password:  "s3cret",
		ProjectID: projectID,
		Env:       leasesdk.EnvStage,
		Domain:    leasesdk.DomainRegular,
	})

	free := false
	accounts, err := client.ListAccounts(ctx, leasesdk.ListFilter{
		ProjectID: &projectID,
		IsLocked:  &free,
	})

	lock, err := client.Lock(ctx, acc.ID)
	if errors.Is(err, leasesdk.ErrAccountLeased) {
		// someone else holds it; pick another account or retry later
	}
	defer client.Unlock(ctx, acc.ID)

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP status
and the service's error code. APIError matches the predefined errors by code,
so errors.Is works with ErrAccountExists, ErrAccountNotFound,
ErrAccountLeased, ErrValidation, ErrStoreUnavailable and ErrRateLimited.

# Lease expiry

When the service runs with a lease TTL, a lock that is not released is
reclaimable by the next Lock call once the TTL has elapsed. Without a TTL a
lock is held until Unlock.
*/
package leasesdk
