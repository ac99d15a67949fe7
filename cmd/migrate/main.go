package main

import (
	"log"
	"os"

	"averin-be/internal/model"
	"averin-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting GORM Migration...")

	// 1. Extensions GORM cannot create itself
	color.Yellow("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 2. AutoMigrate all models
	color.Yellow("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.Note{},
		&model.Link{},
		&model.Action{},
		&model.Attachment{},
		&model.Embedding{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// 3. ANN index for similarity search. HNSW keeps recall high without
	// the list-tuning ivfflat needs at this scale.
	color.Yellow("Step 3: Creating vector index...")
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_embeddings_vector_hnsw
		ON embeddings USING hnsw (vector vector_cosine_ops);`
	if err := db.Exec(indexSQL).Error; err != nil {
		color.Yellow("Warn: Failed to create vector index: %v", err)
	}

	color.Green("Migration completed successfully.")
}
