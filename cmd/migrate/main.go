package main

import (
	"log"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"backend/internal/app/ds"
	"backend/internal/app/dsn"
)

// Имена системных справочников, создаются при миграции
var systemDictionaries = []ds.Dictionary{
	{Name: ds.DictionaryRegions, Description: "Регионы"},
	{Name: ds.DictionaryCities, Description: "Города"},
	{Name: ds.DictionaryMetroStations, Description: "Станции метро"},
	{Name: ds.DictionaryMaterials, Description: "Материалы печати"},
	{Name: ds.DictionaryColors, Description: "Цвета"},
	{Name: ds.DictionaryDeliveryMethods, Description: "Способы доставки"},
}

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	// Получение DSN строки подключения
	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Миграция всех моделей
	err = db.AutoMigrate(
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
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Создание системных справочников, если их ещё нет
	for _, dictionary := range systemDictionaries {
		err = db.Where("name = ?", dictionary.Name).FirstOrCreate(&ds.Dictionary{}, dictionary).Error
		if err != nil {
			log.Fatalf("Failed to seed dictionary %s: %v", dictionary.Name, err)
		}
	}

	log.Println("Database migration completed successfully")
}
