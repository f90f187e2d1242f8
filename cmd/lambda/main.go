package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"go.uber.org/zap"

	"slack_form_bot/internal/config"
	"slack_form_bot/internal/handler"
	"slack_form_bot/internal/logger"
	"slack_form_bot/internal/service/slackapi"
	"slack_form_bot/internal/transport"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.IsDevelopment()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	l := logger.GetLogger()
	router := handler.NewRouter(slackapi.NewClient(cfg.SlackBotToken), l)
	engine := transport.NewEngine(cfg, transport.NewAdapter(cfg.SlackSigningSecret, router, l))

	l.Info("starting lambda handler", zap.String("environment", string(cfg.Environment)))
	ginLambda := ginadapter.New(engine)
	lambda.Start(ginLambda.ProxyWithContext)
}
