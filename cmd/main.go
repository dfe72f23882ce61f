package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jobmatch/config"
	"jobmatch/infrastructure"
	"jobmatch/interfaces"
	"jobmatch/logger"
	"jobmatch/scoring"
	"jobmatch/service"
	"jobmatch/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	var st store.Store
	if cfg.MySQLDSN != "" {
		db, err := infrastructure.NewMySQL(cfg.MySQLDSN, zlog)
		if err != nil {
			zlog.Fatal("mysql setup failed", zap.Error(err))
		}
		st = infrastructure.NewGormStore(db)
	} else {
		zlog.Warn("no mysql dsn configured, using in-memory store")
		st = store.NewMem()
	}

	var pub service.Publisher = service.NopPublisher{}
	if cfg.AMQPURL != "" {
		rmq, err := infrastructure.NewRabbitMQ(cfg.AMQPURL, zlog)
		if err != nil {
			zlog.Fatal("rabbitmq setup failed", zap.Error(err))
		}
		defer rmq.Close()
		pub = rmq
	} else {
		zlog.Warn("no amqp url configured, events are dropped")
	}

	engine := scoring.New(scoring.Weights{
		Skills:     cfg.Scoring.SkillsWeight,
		Location:   cfg.Scoring.LocationWeight,
		Experience: cfg.Scoring.ExperienceWeight,
	})

	matches := service.NewMatchService(st, engine, pub, zlog)
	exams := service.NewExamService(st, matches, pub, zlog)
	rankings := service.NewRankingService(st)
	chats := service.NewChatService(st, pub, zlog)

	router := gin.Default()
	interfaces.NewHTTPHandler(router, &interfaces.HTTPHandler{
		Store:    st,
		Matches:  matches,
		Exams:    exams,
		Rankings: rankings,
		Chats:    chats,
		Log:      zlog,
	})

	zlog.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	if err := router.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
