package services

import (
	"context"
	"fmt"

	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/config"
	"github.com/rs/zerolog"
)

// Pinger is satisfied by *db.PostgresDB
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderService decides which storage backend is in effect
type ProviderService interface {
	Resolve(ctx context.Context) dto.ProviderStatus
}

type providerServiceImpl struct {
	cfg    *config.Config
	pinger Pinger
	logger zerolog.Logger
}

// NewProviderService creates a new ProviderService. pinger may be nil when no
// database pool was opened.
func NewProviderService(cfg *config.Config, pinger Pinger, logger zerolog.Logger) ProviderService {
	return &providerServiceImpl{
		cfg:    cfg,
		pinger: pinger,
		logger: logger,
	}
}

func (s *providerServiceImpl) Resolve(ctx context.Context) dto.ProviderStatus {
	raw := s.cfg.Storage.Provider
	status := dto.ProviderStatus{
		RequestedProvider: raw,
		EffectiveProvider: config.ProviderMemory,
		Checks: dto.ProviderChecks{
			DatabaseConfigReady: s.cfg.DatabaseConfigured(),
			RepositoryReady:     s.cfg.Storage.RepositoryReady,
		},
	}
	if raw != "" {
		status.RequestedProviderRaw = &raw
	}

	switch raw {
	case "", config.ProviderMemory:
		status.RequestedProvider = config.ProviderMemory
		status.Ready = true
		return status

	case config.ProviderPostgres:
		// handled below

	default:
		status.RequestedProvider = config.ProviderMemory
		return withReason(status, fmt.Sprintf("Unsupported data provider %q. Falling back to memory provider.", raw))
	}

	if !status.Checks.DatabaseConfigReady {
		return withReason(status, "Missing database settings (database.host, database.user, database.dbname). Falling back to memory provider.")
	}
	if !status.Checks.RepositoryReady {
		return withReason(status, "Postgres repository implementation is not enabled yet. Set POSTGRES_REPOSITORY_READY=true after implementation. Falling back to memory provider.")
	}

	status.EffectiveProvider = config.ProviderPostgres
	if s.pinger == nil {
		return withReason(status, "Database pool is not initialized.")
	}

	reachable := true
	if err := s.pinger.Ping(ctx); err != nil {
		reachable = false
		status.Checks.DatabaseReachable = &reachable
		s.logger.Warn().Err(err).Msg("postgres provider unreachable")
		return withReason(status, "Database ping failed.")
	}
	status.Checks.DatabaseReachable = &reachable
	status.Ready = true
	return status
}

func withReason(status dto.ProviderStatus, reason string) dto.ProviderStatus {
	status.Ready = false
	status.Reason = &reason
	return status
}
