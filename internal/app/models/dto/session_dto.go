package dto

import "github.com/campulist/campulist/internal/app/models"

// MockLoginInput selects a seeded user either directly by UserID or by role
// within a campus. CampusID defaults to the caller's current campus.
type MockLoginInput struct {
	Role        models.UserRole     `json:"role" binding:"omitempty,oneof=student professor staff merchant admin"`
	StudentType *models.StudentType `json:"student_type" binding:"omitempty,oneof=undergrad graduate"`
	CampusID    *string             `json:"campus_id" binding:"omitempty,uuid"`
	UserID      *string             `json:"user_id" binding:"omitempty,uuid"`
}

// LoginResponse returns the new session and the token that carries it.
type LoginResponse struct {
	Session   models.Session `json:"session"`
	Token     string         `json:"token"`
	ExpiresAt string         `json:"expires_at"`
}

// ProviderChecks lists the inputs the provider decision was made from.
type ProviderChecks struct {
	DatabaseConfigReady bool  `json:"database_config_ready"`
	RepositoryReady     bool  `json:"repository_ready"`
	DatabaseReachable   *bool `json:"database_reachable"`
}

// ProviderStatus describes which storage backend serves requests.
type ProviderStatus struct {
	RequestedProvider    string         `json:"requested_provider"`
	RequestedProviderRaw *string        `json:"requested_provider_raw"`
	EffectiveProvider    string         `json:"effective_provider"`
	Ready                bool           `json:"ready"`
	Reason               *string        `json:"reason"`
	Checks               ProviderChecks `json:"checks"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status   string         `json:"status"`
	Provider ProviderStatus `json:"provider"`
	Time     string         `json:"time"`
}
