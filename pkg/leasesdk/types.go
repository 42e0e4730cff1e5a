package leasesdk

import (
	"time"

	"github.com/google/uuid"
)

// Environment names accepted by the service.
const (
	EnvProd    = "prod"
	EnvPreprod = "preprod"
	EnvStage   = "stage"
)

// Domain classes accepted by the service.
const (
	DomainCanary  = "canary"
	DomainRegular = "regular"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	// Error is a stable machine-readable code, e.g. "account_leased"
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// CreateAccountRequest registers a new leasable account.
type CreateAccountRequest struct {
	Login     string    `json:"login" example:"bot-001@example.com"`
	Password  string    `json:"password" example:"s3cret"`
	ProjectID uuid.UUID `json:"project_id" example:"6f1d2a34-5b6c-4d7e-8f90-a1b2c3d4e5f6"`
	Env       string    `json:"env" enums:"prod,preprod,stage" example:"stage"`
	Domain    string    `json:"domain" enums:"canary,regular" example:"regular"`
}

// Account is the public view of an account. The password hash is never
// returned.
type Account struct {
	ID        string     `json:"id" example:"01J9Z8X7W6V5T4S3R2Q1P0N9M8"`
	Login     string     `json:"login" example:"bot-001@example.com"`
	ProjectID uuid.UUID  `json:"project_id" example:"6f1d2a34-5b6c-4d7e-8f90-a1b2c3d4e5f6"`
	Env       string     `json:"env" example:"stage"`
	Domain    string     `json:"domain" example:"regular"`
	CreatedAt time.Time  `json:"created_at"`
	LockTime  *time.Time `json:"locktime"`
	IsLocked  bool       `json:"is_locked"`
}

// LockResponse is returned by the lock and unlock endpoints.
type LockResponse struct {
	UserID   string     `json:"user_id" example:"01J9Z8X7W6V5T4S3R2Q1P0N9M8"`
	Locked   bool       `json:"locked"`
	LockTime *time.Time `json:"locktime"`
}

// ListFilter narrows ListAccounts. Nil fields are not filtered on.
type ListFilter struct {
	ProjectID *uuid.UUID
	Env       *string
	Domain    *string
	IsLocked  *bool
}

// HealthResponse is returned by /livez, /readyz and {prefix}/health.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status" example:"ok"`

	// Uptime is the service uptime as a Go duration string
	Uptime string `json:"uptime,omitempty" example:"1h23m45s"`

	// Version is the service build version
	Version string `json:"version,omitempty" example:"v0.1.0"`

	// Checks is only set by /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports individual dependency checks.
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
}
