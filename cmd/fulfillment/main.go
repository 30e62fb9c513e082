package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/velomark/fulfillment/internal/app"
	"github.com/velomark/fulfillment/internal/config"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/storage"
)

func main() {
	// переменные окружения из .env (если файла нет - не ошибка)
	_ = godotenv.Load()
	// загрузка конфига
	config := config.NewConfig()
	// инициализация логгера
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		panic(fmt.Sprintf("can't initialize logger: %s ", err.Error()))
	}
	defer logger.Sync()
	// инициализация хранилища (создание БД, миграции)
	ctx := context.Background()
	database, err := storage.NewDatabase(ctx, config.Server.DatabaseDSN)
	if err != nil {
		logger.Panic("can't create database:", err.Error())
	}
	if err := database.Initialize(ctx); err != nil {
		logger.Panic("can't initialize database:", err.Error())
	}
	defer database.Close()
	// запуск сервера и фонового воркера
	app.Run(config, storage.NewStorage(database))
}
