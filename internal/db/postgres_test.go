package db

import (
	"context"
	"testing"

	"github.com/campulist/campulist/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = "1"
	cfg.Database.User = "campulist"
	cfg.Database.DBName = "campulist"
	cfg.Database.MaxOpenConns = 2
	cfg.Database.ConnMaxLifetime = "1m"
	return cfg
}

func TestNewPostgresDBRejectsBadConnString(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Port = "not-a-port"

	_, err := NewPostgresDB(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestPingReportsUnreachableServer(t *testing.T) {
	pg, err := NewPostgresDB(context.Background(), testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer pg.Close()

	assert.Error(t, pg.Ping(context.Background()))
}
