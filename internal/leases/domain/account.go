package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEnvironment = errors.New("invalid environment")
	ErrInvalidDomainClass = errors.New("invalid domain class")
)

// Environment is the deployment stage an account belongs to.
type Environment string

const (
	EnvProd    Environment = "prod"
	EnvPreprod Environment = "preprod"
	EnvStage   Environment = "stage"
)

// ParseEnvironment accepts the canonical lowercase names only.
func ParseEnvironment(s string) (Environment, error) {
	switch env := Environment(strings.TrimSpace(s)); env {
	case EnvProd, EnvPreprod, EnvStage:
		return env, nil
	default:
		return "", ErrInvalidEnvironment
	}
}

func (e Environment) String() string { return string(e) }

// DomainClass separates canary traffic accounts from regular ones.
type DomainClass string

const (
	DomainCanary  DomainClass = "canary"
	DomainRegular DomainClass = "regular"
)

func ParseDomainClass(s string) (DomainClass, error) {
	switch d := DomainClass(strings.TrimSpace(s)); d {
	case DomainCanary, DomainRegular:
		return d, nil
	default:
		return "", ErrInvalidDomainClass
	}
}

func (d DomainClass) String() string { return string(d) }

// Account is a leasable identity. LeaseUntil is the only field that changes
// after creation; nil means nobody holds the account.
type Account struct {
	ID           string
	Login        string
	PasswordHash string // argon2 encoded
	ProjectID    uuid.UUID
	Env          Environment
	Domain       DomainClass
	LeaseUntil   *time.Time // grant timestamp of the current lease (nullable)
	CreatedAt    time.Time
}

// IsLeased reports whether a lease is recorded, regardless of TTL.
func (a Account) IsLeased() bool { return a.LeaseUntil != nil }

// AccountFilter narrows a listing. Nil fields are not applied.
type AccountFilter struct {
	ProjectID *uuid.UUID
	Env       *Environment
	Domain    *DomainClass
	Leased    *bool
}

// Matches applies the filter to a single account in memory.
func (f AccountFilter) Matches(a Account) bool {
	if f.ProjectID != nil && *f.ProjectID != a.ProjectID {
		return false
	}
	if f.Env != nil && *f.Env != a.Env {
		return false
	}
	if f.Domain != nil && *f.Domain != a.Domain {
		return false
	}
	if f.Leased != nil && *f.Leased != a.IsLeased() {
		return false
	}
	return true
}
