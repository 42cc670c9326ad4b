package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rewardlab/backend/config"
	"github.com/rewardlab/backend/internal/domain"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/authenticator"
	"github.com/rewardlab/backend/pkg/logger"
	"github.com/rewardlab/backend/pkg/pubsub"
	"github.com/rewardlab/backend/pkg/xcontext"
	"github.com/rewardlab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB
	server  *http.Server

	userRepo          repository.UserRepository
	eventRepo         repository.EventRepository
	rewardRepo        repository.RewardRepository
	rewardRequestRepo repository.RewardRequestRepository

	tokenEngine authenticator.TokenEngine[model.AccessToken]
	redisClient xredis.Client
	publisher   pubsub.Publisher
	subscriber  pubsub.Subscriber

	authDomain          domain.AuthDomain
	userDomain          domain.UserDomain
	eventDomain         domain.EventDomain
	rewardDomain        domain.RewardDomain
	rewardRequestDomain domain.RewardRequestDomain
	gatewayDomain       domain.GatewayDomain
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return d
}

func (s *srv) loadConfig() {
	s.configs = config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "rewardlab"),
			Password: getEnv("MYSQL_PASSWORD", "rewardlab"),
			Database: getEnv("MYSQL_DATABASE", "rewardlab"),
		},
		Gateway: config.ServerConfigs{
			Host:           getEnv("GATEWAY_HOST", "localhost"),
			Port:           getEnv("GATEWAY_PORT", "8080"),
			Endpoint:       getEnv("GATEWAY_ENDPOINT", "http://localhost:8080"),
			AllowedOrigins: strings.Split(getEnv("GATEWAY_ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
		EventServer: config.ServerConfigs{
			Host:     getEnv("EVENT_SERVER_HOST", "localhost"),
			Port:     getEnv("EVENT_SERVER_PORT", "8081"),
			Endpoint: getEnv("EVENT_SERVER_ENDPOINT", "http://localhost:8081"),
		},
		Auth: config.AuthConfigs{
			AccessTokenName: "access_token",
			AccessToken: config.TokenConfigs{
				Secret:     getEnv("ACCESS_TOKEN_SECRET", "token_secret"),
				Expiration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "24h")),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr:         getEnv("KAFKA_ADDRESS", "localhost:9092"),
			CommandTopic: getEnv("KAFKA_COMMAND_TOPIC", "commands"),
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.db = db
	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.eventRepo = repository.NewEventRepository()
	s.rewardRepo = repository.NewRewardRepository()
	s.rewardRequestRepo = repository.NewRewardRequestRepository()
}

func (s *srv) loadTokenEngine() {
	s.tokenEngine = authenticator.NewTokenEngine[model.AccessToken](s.configs.Auth.AccessToken)
}

// loadRedis is best effort, the event service degrades to uncached queries
// when redis is unreachable.
func (s *srv) loadRedis() {
	client, err := xredis.NewClient(s.ctx, s.configs.Redis)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, run without cache: %v", err)
		return
	}

	s.redisClient = client
}
