package app

import (
	"context"
	"fmt"

	"searchpaper/internal/config"
	"searchpaper/internal/handlers"
	"searchpaper/internal/logger"
	"searchpaper/internal/routes"
	"searchpaper/internal/search"
	"searchpaper/internal/services"
	"searchpaper/internal/storage"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	ctx := context.Background()

	// Хранилище объектов
	var store storage.ObjectStorage
	if cfg.S3Endpoint != "" {
		s3, err := storage.NewS3(ctx, storage.S3Options{
			Endpoint:       cfg.S3Endpoint,
			Region:         cfg.S3Region,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			ForcePathStyle: cfg.S3ForcePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("подключение к S3: %w", err)
		}
		store = s3
	} else {
		logger.Log.Warn("S3_ENDPOINT не задан, используется хранилище в памяти")
		store = storage.NewMemory()
	}

	// Поисковый движок
	engine, err := search.NewEngine(cfg.IndexDir)
	if err != nil {
		return nil, fmt.Errorf("открытие индексов: %w", err)
	}

	// Провижининг: бакет по умолчанию и пайплайн извлечения текста.
	// Без них сервис не работоспособен, падаем на старте.
	exists, err := store.BucketExists(ctx, cfg.DefaultBucket)
	if err != nil {
		return nil, fmt.Errorf("проверка бакета по умолчанию: %w", err)
	}
	if !exists {
		if err := store.CreateBucket(ctx, cfg.DefaultBucket); err != nil {
			return nil, fmt.Errorf("создание бакета по умолчанию: %w", err)
		}
		logger.Log.Info("Создан бакет по умолчанию", zap.String("bucket", cfg.DefaultBucket))
	}
	if err := engine.EnsurePipeline(search.DefaultAttachmentPipeline); err != nil {
		return nil, fmt.Errorf("регистрация пайплайна: %w", err)
	}

	// Сервисы
	folderService := services.NewFolderService(engine, store)
	docService := services.NewDocumentService(engine, store, folderService, cfg.DefaultBucket)
	searchService := services.NewSearchService(engine)

	// Хендлеры
	docHandler := handlers.NewDocumentHandler(docService, folderService)
	folderHandler := handlers.NewFolderHandler(folderService)
	searchHandler := handlers.NewSearchHandler(searchService)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, docHandler, folderHandler, searchHandler)

	return router, nil
}
