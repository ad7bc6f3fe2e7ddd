package main

import (
	"context"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/database"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/handlers"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/config"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/logger"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/repository"
)

func main() {
	cfg, _ := config.Load()
	logger.Init(cfg.Env)
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Init(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Fatal("mongo init error")
	}

	r := handlers.NewRouter(cfg, handlers.Repos{
		Users:    repository.NewMongoUserRepository(db),
		Tasks:    repository.NewMongoTaskRepository(db),
		Insights: repository.NewMongoInsightRepository(db),
	})

	log.WithField("addr", cfg.Addr).Info("listen")
	if err := r.Run(cfg.Addr); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
