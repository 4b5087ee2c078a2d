package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"backend/internal/app/ds"
	"backend/internal/app/dsn"
)

func main() {
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var printers []ds.Printer
	err = db.Find(&printers).Error
	if err != nil {
		log.Fatal("Failed to get printers:", err)
	}

	fmt.Println("Printers in database:")
	for _, printer := range printers {
		cluster := "NULL"
		if printer.ClusterID != nil {
			cluster = fmt.Sprintf("%d", *printer.ClusterID)
		}
		fmt.Printf("ID: %d, Model: %s, State: %s, Cluster: %s\n", printer.ID, printer.ModelName, printer.State, cluster)
	}
}
