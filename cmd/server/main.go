package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"slack_form_bot/internal/config"
	"slack_form_bot/internal/handler"
	"slack_form_bot/internal/logger"
	"slack_form_bot/internal/service/slackapi"
	"slack_form_bot/internal/transport"
)

func main() {
	cmd := &cli.Command{
		Name:  "slack-form-bot",
		Usage: "Serve the Slack form bot over plain HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Usage:   "local port to listen on",
				Value:   "3000",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides LOG_LEVEL)",
			},
		},
		Action: serve,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	port := cmd.String("port")

	if err := logger.Init(cfg.LogLevel, cfg.IsDevelopment()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	l := logger.GetLogger()
	router := handler.NewRouter(slackapi.NewClient(cfg.SlackBotToken), l)
	engine := transport.NewEngine(cfg, transport.NewAdapter(cfg.SlackSigningSecret, router, l))

	l.Info("listening", zap.String("port", port), zap.String("environment", string(cfg.Environment)))
	return engine.Run(":" + port)
}
