package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"founder-match/internal/domain/matching"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Store    StoreConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Kafka    KafkaConfig
	Matching MatchingConfig
	Seed     SeedConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	// LogLevel is the pgx trace level for statements: trace, debug, info,
	// warn, error or none.
	LogLevel string
}

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// StoreConfig selects where profiles and matches live. Users, skills and
// notifications are always kept in Postgres.
type StoreConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
}

// SeedConfig carries the optional bootstrap administrator. Admin accounts
// cannot be created through the API.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

func (c SeedConfig) HasAdmin() bool {
	return c.AdminEmail != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type KafkaConfig struct {
	Brokers    []string
	MatchTopic string
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type MatchingConfig struct {
	Weights         matching.Weights
	GenerateWorkers int
	// GenerateRPS caps how many users a batch run starts per second; 0 is unlimited.
	GenerateRPS int
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		MigrationsDir: opt("MIGRATIONS_DIR", "migrations"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST", "localhost"),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", "founder_match"),
		DBUser:                opt("DB_USER", "postgres"),
		DBPassword:            opt("DB_PASSWORD", ""),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		LogLevel:              strings.ToLower(opt("DB_LOG_LEVEL", "warn")),
	}

	cfg.Store = StoreConfig{
		Driver:        strings.ToLower(opt("MATCH_STORE", StorePostgres)),
		MongoURI:      opt("MONGO_URI", ""),
		MongoDatabase: opt("MONGO_DATABASE", "founder_match"),
	}
	switch cfg.Store.Driver {
	case StorePostgres:
	case StoreMongo:
		if cfg.Store.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
	default:
		invalid = append(invalid, "MATCH_STORE")
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      time.Duration(optInt("REDIS_TTL", 600)) * time.Second,
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Kafka = KafkaConfig{
		Brokers:    splitList(opt("KAFKA_BROKERS", "")),
		MatchTopic: opt("KAFKA_MATCH_TOPIC", "match-events"),
	}

	def := matching.DefaultWeights()
	w := def
	w.Skills = optFloat("MATCH_WEIGHT_SKILLS", def.Skills)
	w.Industry = optFloat("MATCH_WEIGHT_INDUSTRY", def.Industry)
	w.Availability = optFloat("MATCH_WEIGHT_AVAILABILITY", def.Availability)
	w.Experience = optFloat("MATCH_WEIGHT_EXPERIENCE", def.Experience)
	w.Personality = optFloat("MATCH_WEIGHT_PERSONALITY", def.Personality)
	w.Threshold = optInt("MATCH_THRESHOLD", def.Threshold)
	if w.Threshold < 0 || w.Threshold > 100 {
		invalid = append(invalid, "MATCH_THRESHOLD")
	}

	cfg.Matching = MatchingConfig{
		Weights:         w,
		GenerateWorkers: optInt("MATCH_GENERATE_WORKERS", 4),
		GenerateRPS:     optInt("MATCH_GENERATE_RPS", 0),
	}
	if cfg.Matching.GenerateRPS < 0 {
		invalid = append(invalid, "MATCH_GENERATE_RPS")
	}

	cfg.Seed = SeedConfig{
		AdminEmail:    strings.ToLower(opt("ADMIN_EMAIL", "")),
		AdminPassword: opt("ADMIN_PASSWORD", ""),
	}
	if cfg.Seed.HasAdmin() && cfg.Seed.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
