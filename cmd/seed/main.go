package main

import (
	"flag"
	"os"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"
)

func main() {
	var ingredientsPath string
	var withTags bool
	flag.StringVar(&ingredientsPath, "ingredients", "data/ingredients.csv", "食材 CSV 路径 (name,measurement_unit)")
	flag.BoolVar(&withTags, "tags", true, "写入预置标签")
	flag.Parse()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	gormLog := logger.NewGormLogger(cfg.Server.Mode, time.Duration(cfg.Log.SlowQueryMillis)*time.Millisecond)
	db, err := models.Connect(cfg.Database, gormLog)
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if withTags {
		if err := models.Seed(db, models.SeedOptions{SkipAdmin: true}); err != nil {
			stdLog.Fatalf("Failed to seed tags: %v", err)
		}
		logger.Infow("seed_tags_done")
	}

	if ingredientsPath == "" {
		return
	}
	file, err := os.Open(ingredientsPath)
	if err != nil {
		stdLog.Fatalf("Failed to open ingredients file: %v", err)
	}
	defer file.Close()

	ingredientService := service.NewIngredientService(repository.NewIngredientRepository(db))
	result, err := ingredientService.ImportCSV(file)
	if err != nil {
		stdLog.Fatalf("Failed to import ingredients: %v", err)
	}
	logger.Infow("seed_ingredients_done",
		"file", ingredientsPath,
		"total", result.Total,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
	)
}
