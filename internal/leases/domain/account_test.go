package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseEnvironment(t *testing.T) {
	for _, s := range []string{"prod", "preprod", "stage", " stage "} {
		env, err := ParseEnvironment(s)
		require.NoError(t, err, s)
		require.NotEmpty(t, env)
	}

	for _, s := range []string{"", "PROD", "dev", "staging"} {
		_, err := ParseEnvironment(s)
		require.ErrorIs(t, err, ErrInvalidEnvironment, s)
	}
}

func TestParseDomainClass(t *testing.T) {
	d, err := ParseDomainClass("canary")
	require.NoError(t, err)
	require.Equal(t, DomainCanary, d)

	d, err = ParseDomainClass("regular")
	require.NoError(t, err)
	require.Equal(t, DomainRegular, d)

	_, err = ParseDomainClass("beta")
	require.ErrorIs(t, err, ErrInvalidDomainClass)
}

func TestAccountFilterMatches(t *testing.T) {
	project := uuid.New()
	other := uuid.New()
	now := time.Now().UTC()

	acc := Account{
		ID:        "01J0000000000000000000000A",
		ProjectID: project,
		Env:       EnvStage,
		Domain:    DomainRegular,
	}

	leased := true
	free := false
	stage := EnvStage
	prod := EnvProd
	canary := DomainCanary

	require.True(t, AccountFilter{}.Matches(acc))
	require.True(t, AccountFilter{ProjectID: &project, Env: &stage}.Matches(acc))
	require.False(t, AccountFilter{ProjectID: &other}.Matches(acc))
	require.False(t, AccountFilter{Env: &prod}.Matches(acc))
	require.False(t, AccountFilter{Domain: &canary}.Matches(acc))
	require.True(t, AccountFilter{Leased: &free}.Matches(acc))
	require.False(t, AccountFilter{Leased: &leased}.Matches(acc))

	acc.LeaseUntil = &now
	require.True(t, acc.IsLeased())
	require.True(t, AccountFilter{Leased: &leased}.Matches(acc))
}
