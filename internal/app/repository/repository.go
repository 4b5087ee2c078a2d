package repository

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"backend/internal/app/ds"
)

type Repository struct {
	db *gorm.DB
}

// New открывает подключение к Postgres и мигрирует схему
func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return NewWithDB(db)
}

// NewWithDB оборачивает готовое подключение (используется в тестах с sqlite)
func NewWithDB(db *gorm.DB) (*Repository, error) {
	// Автоматическая миграция всех таблиц
	err := db.AutoMigrate(
		&ds.User{},
		&ds.Dictionary{},
		&ds.DictionaryItem{},
		&ds.Printer{},
		&ds.PrinterMaterial{},
		&ds.PrinterColor{},
		&ds.Cluster{},
		&ds.ClusterDelivery{},
		&ds.ClusterPrinter{},
		&ds.ClusterPrinterRequest{},
		&ds.Order{},
		&ds.OrderCluster{},
		&ds.OrderFile{},
		&ds.OrderMessage{},
		&ds.Notification{},
		&ds.Address{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}
