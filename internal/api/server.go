package api

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/config"
	"backend/internal/app/dsn"
	"backend/internal/app/handler"
	"backend/internal/app/middleware"
	"backend/internal/app/queue"
	"backend/internal/app/redis"
	"backend/internal/app/repository"
	"backend/internal/app/storage"
	"backend/internal/pkg"
)

// StartServer собирает все зависимости и запускает HTTP-сервер
func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("ошибка чтения конфигурации: ", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatal("ошибка инициализации репозитория: ", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatal("ошибка подключения к redis: ", err)
	}

	minioClient, err := storageClient(cfg)
	if err != nil {
		logrus.Fatal("ошибка подключения к minio: ", err)
	}

	publisher, err := queue.New(cfg.Queue.URL, cfg.Queue.Exchange)
	if err != nil {
		// Очередь не критична для работы API
		logrus.Warn("очередь событий недоступна: ", err)
		publisher = nil
	}

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, minioClient, authHandler, publisher, cfg)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.Upload.MaxFileSize

	// CORS для фронтенда
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Отметка активности авторизованных пользователей
	router.Use(middleware.ActivityMiddleware(repo))

	app := pkg.NewApp(cfg, router, apiHandler, authMiddleware)
	app.RunApp()
}

func storageClient(cfg *config.Config) (*storage.MinIOClient, error) {
	return storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
}
