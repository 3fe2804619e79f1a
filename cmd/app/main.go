package main

import (
	"PraxisAdminClient/internal/bootstrap"
	"PraxisAdminClient/internal/config"
	"PraxisAdminClient/internal/model"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig()
	httpClient := config.NewHTTPClient(cfg)
	validate := config.NewValidator()
	sdk := bootstrap.Init(cfg, httpClient, validate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	page, err := sdk.Users.Page(ctx, model.PageQuery[model.UserFilter]{
		Page: model.IntPtr(0),
		Size: model.IntPtr(10),
	})
	if err != nil {
		slog.Error("Failed to reach the Praxis API", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to Praxis API", "users", page.Page.TotalElements)

	store, subscriber, err := bootstrap.OpenChat(ctx, cfg, sdk)
	if err != nil {
		slog.Error("Failed to open chat", "error", err)
		os.Exit(1)
	}
	slog.Info("Chat opened", "rooms", len(store.Rooms()))

	if err := subscriber.Run(ctx); err != nil {
		slog.Error("Push channel closed", "error", err)
		os.Exit(1)
	}
}
