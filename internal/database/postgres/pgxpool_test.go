package postgres

import (
	"context"
	"testing"
	"time"

	"founder-match/internal/config"

	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func baseDBConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBName:     "founder_match",
		DBUser:     "matcher",
		DBPassword: "p@ss word/1",
		DBSSLMode:  "disable",
	}
}

func TestPoolConfig_ParsesConnection(t *testing.T) {
	pcfg, err := poolConfig(baseDBConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	cc := pcfg.ConnConfig
	if cc.Host != "db.internal" || cc.Port != 5433 || cc.Database != "founder_match" {
		t.Fatalf("unexpected target: %s:%d/%s", cc.Host, cc.Port, cc.Database)
	}
	if cc.User != "matcher" || cc.Password != "p@ss word/1" {
		t.Fatalf("credentials not preserved: %q / %q", cc.User, cc.Password)
	}
}

func TestPoolConfig_AppliesKnobs(t *testing.T) {
	cfg := baseDBConfig()
	cfg.ConnectTimeout = 3 * time.Second
	cfg.PoolMaxConns = 12
	cfg.PoolMinConns = 2
	cfg.PoolMaxConnLifetime = 30 * time.Minute
	cfg.PoolMaxConnIdleTime = time.Minute
	cfg.PoolHealthCheckPeriod = 15 * time.Second

	pcfg, err := poolConfig(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pcfg.ConnConfig.ConnectTimeout != 3*time.Second {
		t.Fatalf("connect timeout: %s", pcfg.ConnConfig.ConnectTimeout)
	}
	if pcfg.MaxConns != 12 || pcfg.MinConns != 2 {
		t.Fatalf("conns: max=%d min=%d", pcfg.MaxConns, pcfg.MinConns)
	}
	if pcfg.MaxConnLifetime != 30*time.Minute || pcfg.MaxConnIdleTime != time.Minute || pcfg.HealthCheckPeriod != 15*time.Second {
		t.Fatalf("durations not applied: %+v", pcfg)
	}
}

func TestPoolConfig_RejectsBadValues(t *testing.T) {
	cfg := baseDBConfig()
	cfg.PoolMaxConns = 2
	cfg.PoolMinConns = 5
	if _, err := poolConfig(cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected min > max to fail")
	}

	cfg = baseDBConfig()
	cfg.LogLevel = "loud"
	if _, err := poolConfig(cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected unknown log level to fail")
	}
}

func TestPoolConfig_TracerFollowsLogLevel(t *testing.T) {
	cfg := baseDBConfig()
	cfg.LogLevel = "none"
	pcfg, err := poolConfig(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pcfg.ConnConfig.Tracer != nil {
		t.Fatalf("expected no tracer for level none")
	}

	cfg.LogLevel = "debug"
	pcfg, err = poolConfig(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	tl, ok := pcfg.ConnConfig.Tracer.(*tracelog.TraceLog)
	if !ok || tl.LogLevel != tracelog.LogLevelDebug {
		t.Fatalf("unexpected tracer: %#v", pcfg.ConnConfig.Tracer)
	}
}

func TestZapTraceLogger_MapsLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zapTraceLogger(zap.New(core))

	l.Log(context.Background(), tracelog.LogLevelError, "Query", map[string]any{"sql": "SELECT 1"})
	l.Log(context.Background(), tracelog.LogLevelTrace, "Prepare", nil)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel || entries[0].ContextMap()["sql"] != "SELECT 1" {
		t.Fatalf("unexpected error entry: %+v", entries[0])
	}
	if entries[1].Level != zapcore.DebugLevel {
		t.Fatalf("trace should map to debug, got %s", entries[1].Level)
	}
}

func TestPool_NilHandle(t *testing.T) {
	var p *Pool
	if err := p.Ping(context.Background()); err == nil {
		t.Fatalf("expected error from nil pool")
	}
	if err := p.QueryRow(context.Background(), "SELECT 1").Scan(); err == nil {
		t.Fatalf("expected error row from nil pool")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close on nil pool: %v", err)
	}
}
