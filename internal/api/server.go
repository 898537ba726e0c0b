package api

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/config"
	"backend/internal/app/dsn"
	"backend/internal/app/handler"
	"backend/internal/app/redis"
	"backend/internal/app/repository"
	"backend/internal/app/storage"
	"backend/internal/app/submission"
	"backend/internal/pkg"
)

func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("ошибка чтения конфигурации: ", err)
	}

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN пуст - проверьте .env")
	}

	repo, err := repository.New(dsnStr)
	if err != nil {
		logrus.Fatal("ошибка инициализации репозитория: ", err)
	}

	// Каталог загружается один раз, дальше только чтение из памяти
	catalog, err := repo.LoadCatalog()
	if err != nil {
		logrus.Fatal("ошибка загрузки каталога: ", err)
	}
	logrus.Infof("Catalog loaded: %d features, %d packages, %d plans",
		len(catalog.Features()), len(catalog.Packages()), len(catalog.Plans()))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logrus.Fatal("ошибка подключения к Redis: ", err)
	}
	defer redisClient.Close()

	// Без MinIO сервис работает, недоступно только формирование смет
	var estimateStore handler.EstimateStore
	minioClient, err := storage.NewMinIOClient(cfg.Minio)
	if err != nil {
		logrus.Warn("MinIO недоступен, формирование смет отключено: ", err)
	} else {
		estimateStore = minioClient
	}

	submitter := submission.New(cfg.Submission)

	apiHandler := handler.NewAPIHandler(catalog, redisClient, estimateStore, submitter)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	application := pkg.NewApp(cfg, r, apiHandler)
	application.RunApp()
}
