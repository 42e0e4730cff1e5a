package leasesdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateAccount registers an account. ErrAccountExists if the login is taken.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.api("/users"), req)
	if err != nil {
		return nil, err
	}

	var acc Account
	if err := decodeJSON(resp, &acc, http.StatusCreated); err != nil {
		return nil, err
	}
	return &acc, nil
}

// ListAccounts returns accounts matching every set filter field.
func (c *Client) ListAccounts(ctx context.Context, f ListFilter) ([]Account, error) {
	q := url.Values{}
	if f.ProjectID != nil {
		q.Set("project_id", f.ProjectID.String())
	}
	if f.Env != nil {
		q.Set("env", *f.Env)
	}
	if f.Domain != nil {
		q.Set("domain", *f.Domain)
	}
	if f.IsLocked != nil {
		q.Set("is_locked", strconv.FormatBool(*f.IsLocked))
	}

	path := c.api("/users")
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var accounts []Account
	if err := decodeJSON(resp, &accounts, http.StatusOK); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Lock acquires the lease on an account. ErrAccountLeased while someone else
// holds it, ErrAccountNotFound for unknown ids.
func (c *Client) Lock(ctx context.Context, id string) (*LockResponse, error) {
	return c.lockOp(ctx, id, "lock")
}

// Unlock releases the lease. Unlocking a free account succeeds.
func (c *Client) Unlock(ctx context.Context, id string) (*LockResponse, error) {
	return c.lockOp(ctx, id, "unlock")
}

func (c *Client) lockOp(ctx context.Context, id, op string) (*LockResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.api("/users/"+url.PathEscape(id)+"/"+op), nil)
	if err != nil {
		return nil, err
	}

	var out LockResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
