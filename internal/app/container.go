package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"founder-match/internal/config"
	"founder-match/internal/database"
	"founder-match/internal/database/migration"
	dbpostgres "founder-match/internal/database/postgres"
	"founder-match/internal/domain/matching"
	"founder-match/internal/domain/user"
	"founder-match/internal/infrastructure/cache"
	"founder-match/internal/infrastructure/events"
	"founder-match/internal/infrastructure/persistence/mongostore"
	"founder-match/internal/infrastructure/persistence/postgres"
	"founder-match/internal/pkg/jwt"
	"founder-match/internal/pkg/validation"
	"founder-match/internal/repository"
	"founder-match/internal/usecase"
	"founder-match/internal/ws"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type eventPublisher interface {
	usecase.MatchEventPublisher
	Close() error
}

// Container owns every long-lived dependency of the process.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB     database.DB
	Mongo  *mongo.Client
	Cache  *cache.Redis
	Events eventPublisher
	Hub    *ws.Hub
	JWT    jwt.Service

	Users         user.Repository
	Profiles      repository.ProfileRepository
	Matches       repository.MatchRepository
	Skills        repository.SkillRepository
	Notifications repository.NotificationRepository
	Messages      repository.MessageRepository
	MatchStats    repository.MatchStatsReader
	SkillUsage    repository.SkillUsageReader
	UserCount     usecase.UserCounter

	Auth         *usecase.Auth
	Profile      *usecase.ProfileService
	Skill        *usecase.Skill
	Notification *usecase.NotificationService
	Message      *usecase.MessageService
	Analytics    *usecase.AnalyticsService
	Generator    *usecase.MatchGenerator
	Lifecycle    *usecase.MatchLifecycle
	Query        *usecase.MatchQueryService
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger.Named("postgres"))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	c := &Container{Config: cfg, Logger: logger, DB: db}

	if cfg.App.MigrationsDir != "" {
		if err := (migration.Runner{Dir: cfg.App.MigrationsDir, Logger: logger.Named("migration")}).Run(ctx, db.SQLDB()); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	if err := c.initStores(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger.Named("cache"))
	if cfg.Kafka.Enabled() {
		c.Events = events.NewKafkaPublisher(cfg.Kafka, logger.Named("events"))
	} else {
		c.Events = events.NopPublisher{}
	}

	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	c.Hub = ws.NewHub(logger.Named("ws"))

	c.initUsecases()
	return c, nil
}

func (c *Container) initStores(ctx context.Context) error {
	users := postgres.NewUserRepository(c.DB)
	c.Users = users
	c.UserCount = users
	c.Skills = repository.NewPostgresSkillRepository(c.DB)
	c.Notifications = repository.NewPostgresNotificationRepository(c.DB)
	c.Messages = repository.NewPostgresMessageRepository(c.DB)

	switch c.Config.Store.Driver {
	case config.StoreMongo:
		client, mdb, err := mongostore.Connect(ctx, c.Config.Store)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		c.Mongo = client
		if err := mongostore.EnsureIndexes(ctx, mdb); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		profiles := mongostore.NewProfileRepository(mdb)
		matches := mongostore.NewMatchRepository(mdb)
		c.Profiles, c.SkillUsage = profiles, profiles
		c.Matches, c.MatchStats = matches, matches
	default:
		profiles := repository.NewPostgresProfileRepository(c.DB)
		matches := repository.NewPostgresMatchRepository(c.DB)
		c.Profiles, c.SkillUsage = profiles, profiles
		c.Matches, c.MatchStats = matches, matches
	}

	c.Logger.Info("stores ready", zap.String("match_store", c.Config.Store.Driver))
	return nil
}

func (c *Container) initUsecases() {
	v := validation.New()
	scorer := matching.NewScorer(c.Config.Matching.Weights)

	c.Auth = usecase.NewAuthUsecase(c.Users, c.JWT, v)
	c.Skill = usecase.NewSkillUsecase(c.Skills)
	c.Profile = usecase.NewProfileService(c.Profiles, c.Skills, c.Matches, c.Cache, v, c.Logger.Named("profile"))
	c.Notification = usecase.NewNotificationService(c.Notifications, c.Hub, c.Logger.Named("notification"))
	c.Message = usecase.NewMessageService(c.Matches, c.Messages, c.Logger.Named("message"))
	c.Analytics = usecase.NewAnalyticsService(c.UserCount, c.MatchStats, c.SkillUsage)
	c.Generator = usecase.NewMatchGenerator(c.Profiles, c.Matches, scorer, c.Cache, c.Events, c.Logger.Named("generator"))
	c.Lifecycle = usecase.NewMatchLifecycle(c.Matches, c.Notification, c.Cache, c.Events, c.Logger.Named("lifecycle"))
	c.Query = usecase.NewMatchQueryService(c.Matches, c.Profiles, c.Cache, c.Logger.Named("query"))
}

// MongoPinger adapts the mongo client to the health check.
type MongoPinger struct {
	Client *mongo.Client
}

func (p MongoPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Events != nil {
		errs = append(errs, c.Events.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, c.Mongo.Disconnect(ctx))
		cancel()
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
