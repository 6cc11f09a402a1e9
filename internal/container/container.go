package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"account-service/config"
	"account-service/internal/infrastructure/rabbitmq"
	"account-service/internal/infrastructure/sqlite"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	accountRepo *sqlite.AccountRepository
	redisClient *redis.Client
	eventPub    *rabbitmq.EventPublisher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetAccountRepo(r *sqlite.AccountRepository) { accountRepo = r }
func GetAccountRepo() *sqlite.AccountRepository  { return accountRepo }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetEventPublisher(p *rabbitmq.EventPublisher) { eventPub = p }
func GetEventPublisher() *rabbitmq.EventPublisher  { return eventPub }
