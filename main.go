package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	appconfig "github.com/mineback/postulaciones/config"
	"github.com/mineback/postulaciones/domain/infra"
	"github.com/mineback/postulaciones/domain/model"
	"github.com/mineback/postulaciones/handler"
	"github.com/mineback/postulaciones/web"
)

func main() {
	_ = godotenv.Load()

	configPath := "config.json"
	if os.Getenv("CONFIG_PATH") != "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	if cfg.DiscordToken == "" {
		slog.Error("DISCORD_TOKEN is not set")
		os.Exit(1)
	}

	bank, err := model.LoadQuestionBank(cfg.QuestionBankPath)
	if err != nil {
		slog.Error("question bank load failed", slog.Any("err", err))
		os.Exit(1)
	}

	var ds infra.Datastore
	if cfg.DBDriver == "dynamodb" {
		ds, err = infra.NewDynamoDB()
	} else {
		ds, err = infra.NewDataBase(cfg.DBPath)
	}
	if err != nil {
		slog.Error("datastore init failed", slog.Any("err", err))
		os.Exit(1)
	}

	queue := model.NewSubmissionQueue()

	h, err := handler.NewHandler(cfg, bank, queue, ds)
	if err != nil {
		slog.Error("NewHandler failed", slog.Any("err", err))
		os.Exit(1)
	}

	srv := web.NewServer(cfg, queue, ds, h.IntakeOpen)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			slog.Error("web server failed", slog.Any("err", err))
		}
	}()

	if err := h.Handle(); err != nil {
		slog.Error("bot failed", slog.Any("err", err))
		os.Exit(1)
	}
}
