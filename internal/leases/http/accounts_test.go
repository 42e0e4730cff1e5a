package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/aussiebroadwan/botofarm/internal/leases/domain"
	"github.com/aussiebroadwan/botofarm/pkg/leasesdk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestValidateCreateTrimsLogin(t *testing.T) {
	reg, problem := validateCreate(leasesdk.CreateAccountRequest{
		Login:     "  bot@example.com ",
		Password:  "p",
		ProjectID: uuid.New(),
		Env:       "preprod",
		Domain:    "canary",
	})
	require.Empty(t, problem)
	require.Equal(t, "bot@example.com", reg.Login)
	require.Equal(t, domain.EnvPreprod, reg.Env)
	require.Equal(t, domain.DomainCanary, reg.Domain)
}

func TestNormalizePrefix(t *testing.T) {
	require.Equal(t, "", normalizePrefix(""))
	require.Equal(t, "", normalizePrefix("/"))
	require.Equal(t, "/api", normalizePrefix("api"))
	require.Equal(t, "/api", normalizePrefix("/api/"))
	require.Equal(t, "/v1/leases", normalizePrefix(" /v1/leases "))
}

func TestParseFilterLockSpellings(t *testing.T) {
	for _, v := range []string{"true", "1", "YES", "on", "y", "t"} {
		f, problem := parseFilter(lockQuery(v))
		require.Empty(t, problem, v)
		require.NotNil(t, f.Leased, v)
		require.True(t, *f.Leased, v)
	}
	for _, v := range []string{"false", "0", "No", "off", "n", "f"} {
		f, problem := parseFilter(lockQuery(v))
		require.Empty(t, problem, v)
		require.NotNil(t, f.Leased, v)
		require.False(t, *f.Leased, v)
	}
	for _, v := range []string{"maybe", "2", "yess"} {
		_, problem := parseFilter(lockQuery(v))
		require.Equal(t, "is_locked must be a boolean", problem, v)
	}
}

func lockQuery(v string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/api/users?"+url.Values{"is_locked": {v}}.Encode(), nil)
}
