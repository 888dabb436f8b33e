package main

import (
	"context"
	"log"
	"time"

	"mutual-aid/internal/repository"
	"mutual-aid/pkg/database"
	"mutual-aid/pkg/logger"

	"gorm.io/gorm"
)

func runMigrationsUp(db *gorm.DB) {
	log.Println("Running migrations UP...")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully!")
}

func showStatus(db *gorm.DB) {
	log.Println("Checking database status...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Ping(ctx, db); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")

	for _, table := range database.Tables {
		if !database.TableExists(db, table) {
			log.Printf("Table %-15s does not exist", table)
			continue
		}
		count, err := database.GetTableCount(db, table)
		if err != nil {
			log.Printf("Error counting table %s: %v", table, err)
			continue
		}
		log.Printf("Table %-15s exists (%d rows)", table, count)
	}
}

func runSeedDevelopment(db *gorm.DB) {
	log.Println("Seeding database (development mode)...")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	result, err := database.SeedDevelopment(ctx, repository.NewGormStore(db), logger.New(logger.DevelopmentMode))
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seed Summary:")
	log.Printf("   - Users: %d", len(result.Users))
	log.Printf("   - Requests: %d", len(result.Requests))
	log.Printf("   - Messages: %d", len(result.Messages))
	log.Println("Development seeding completed!")
}

func runReset(db *gorm.DB) {
	log.Println("WARNING: This will DROP the portal tables and re-run migrations!")
	log.Println("Press Ctrl+C within 5 seconds to cancel...")
	time.Sleep(5 * time.Second)

	if err := database.DropAll(db); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Database reset completed!")
}
