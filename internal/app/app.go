package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/velomark/fulfillment/internal/config"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/network/router"
	"github.com/velomark/fulfillment/internal/storage"
	"github.com/velomark/fulfillment/internal/worker"
)

func Run(config config.Config, storage storage.IStorage) {

	router := router.NewRouter(config, storage)

	// стартовая учётная запись администратора из конфигурации
	if err := router.Identity.EnsureBootstrapAdmin(context.Background()); err != nil {
		logger.Panic("can't seed bootstrap admin:", err.Error())
	}

	server := &http.Server{
		Addr:    config.Server.ListenAddr,
		Handler: router.HandleRouter(),
	}
	// Создание и запуск воркера напоминаний
	worker := worker.NewReminderWorker(router.Reminders, config.Jobs.SweepInterval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(
			"Starting server config:", config,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", err.Error())
		}
	}()

	<-stop
	logger.Info("Shutdown server")
	worker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", err.Error())
	}
	logger.Info("Server stopped")
}
