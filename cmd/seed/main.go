package main

import (
	"fmt"
	"log"
	"os"

	"github.com/olumide/foodloan-backend/config"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/internal/app/service"
	"github.com/olumide/foodloan-backend/internal/db"
)

// Imports an employee roster XLSX into the users table. Expected
// columns: first name, last name, email, phone, employee ID, level,
// government entity, monthly salary. The first row is the header.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <roster.xlsx>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userAdminService := service.NewUserAdminService(repository.NewUserRepository(db.GetDB()))

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatal("Failed to open roster:", err)
	}
	defer file.Close()

	fmt.Printf("Importing employee roster: %s\n", filePath)
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	result, err := userAdminService.ImportUsersXLSX(file)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("Import completed.")
	fmt.Printf("Created: %d\n", result.Created)
	fmt.Printf("Rejected rows: %d\n", len(result.Failed))
	for _, failure := range result.Failed {
		fmt.Printf("  row %d: %s\n", failure.Row, failure.Reason)
	}
}
