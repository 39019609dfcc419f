package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/luckdraw/backend/config"
	"github.com/luckdraw/backend/internal/domain"
	"github.com/luckdraw/backend/internal/repository"
	"github.com/luckdraw/backend/pkg/kafka"
	"github.com/luckdraw/backend/pkg/logger"
	"github.com/luckdraw/backend/pkg/mailer"
	"github.com/luckdraw/backend/pkg/pubsub"
	"github.com/luckdraw/backend/pkg/router"
	"github.com/luckdraw/backend/pkg/storage"
	"github.com/luckdraw/backend/pkg/xcontext"
	"github.com/luckdraw/backend/pkg/xredis"
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

	redisClient xredis.Client
	publisher   pubsub.Publisher
	storage     storage.Storage
	mailer      mailer.Mailer

	organizationRepo repository.OrganizationRepository
	memberRepo       repository.MemberRepository
	entryRepo        repository.EntryRepository
	prizeRepo        repository.PrizeRepository

	authDomain         domain.AuthDomain
	organizationDomain domain.OrganizationDomain
	entryDomain        domain.EntryDomain
	drawDomain         domain.DrawDomain
	prizeDomain        domain.PrizeDomain
	notificationDomain domain.NotificationDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	if _, err := toml.DecodeFile(cctx.String("config"), &s.configs); err != nil {
		panic(err)
	}

	if secret := os.Getenv("AUTH_TOKEN_SECRET"); secret != "" {
		s.configs.Auth.AccessToken.Secret = secret
	}

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		s.configs.Database.Password = password
	}

	if password := os.Getenv("MAIL_PASSWORD"); password != "" {
		s.configs.Mail.Password = password
	}

	s.ctx = xcontext.WithConfigs(context.Background(), s.configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if strings.ToLower(s.configs.Env) == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	s.db = db
	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, the organization cache is disabled: %v", err)
		return
	}

	s.redisClient = redisClient
}

func (s *srv) loadPublisher() {
	if s.configs.Kafka.Addr == "" {
		s.logger.Warnf("Kafka is not configured, winner events are disabled")
		return
	}

	publisher, err := kafka.NewPublisher("luckdraw-api", strings.Split(s.configs.Kafka.Addr, ","))
	if err != nil {
		s.logger.Warnf("Cannot connect to kafka, winner events are disabled: %v", err)
		return
	}

	s.publisher = publisher
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadMailer() {
	m, err := mailer.NewSMTPMailer(s.configs.Mail)
	if err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			s.logger.Warnf("Mail is not configured, winner notifications are disabled")
			return
		}

		panic(err)
	}

	s.mailer = m
}

func (s *srv) loadRepos() {
	s.organizationRepo = repository.NewOrganizationRepository(s.redisClient)
	s.memberRepo = repository.NewMemberRepository()
	s.entryRepo = repository.NewEntryRepository()
	s.prizeRepo = repository.NewPrizeRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.memberRepo, s.organizationRepo)
	s.organizationDomain = domain.NewOrganizationDomain(s.organizationRepo, s.memberRepo, s.storage)
	s.entryDomain = domain.NewEntryDomain(s.entryRepo, s.organizationRepo, s.memberRepo)
	s.drawDomain = domain.NewDrawDomain(s.entryRepo, s.memberRepo, s.publisher)
	s.prizeDomain = domain.NewPrizeDomain(s.prizeRepo, s.organizationRepo, s.memberRepo)
	s.notificationDomain = domain.NewNotificationDomain(
		s.entryRepo, s.prizeRepo, s.organizationRepo, s.memberRepo, s.mailer)
}
