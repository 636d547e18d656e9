package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"gamey/internal/bootstrap"
	"gamey/internal/bot"
	ybotRPC "gamey/microservices/proto"
	"gamey/microservices/usecase"
)

func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", "error", err)
		return
	}

	addr := ":" + cfg.BotServerPort
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatalw("cant listen port", "addr", addr, "error", err)
	}

	server := grpc.NewServer()
	registry := bot.DefaultRegistry()
	ybotRPC.RegisterYBotServiceServer(server, usecase.NewYBotUseCase(registry, logger))

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		logger.Info("Received shutdown signal")
		server.GracefulStop()
	}()

	logger.Infow("starting ybot server", "addr", addr, "bots", registry.IDs())
	if err := server.Serve(lis); err != nil {
		logger.Fatalw("ybot server stopped", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
