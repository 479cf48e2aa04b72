package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/foodgram-next/internal/repository"
)

func TestIngredientServiceCreateRejectsDuplicates(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewIngredientService(repository.NewIngredientRepository(db))

	if _, err := svc.Create(IngredientInput{Name: "сахар", MeasurementUnit: "г"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(IngredientInput{Name: " сахар ", MeasurementUnit: "г"}); !errors.Is(err, ErrIngredientExists) {
		t.Fatalf("duplicate want ErrIngredientExists got %v", err)
	}
	if _, err := svc.Create(IngredientInput{Name: "сахар", MeasurementUnit: "ст. л."}); err != nil {
		t.Fatalf("same name other unit should be allowed: %v", err)
	}
	if _, err := svc.Create(IngredientInput{Name: "", MeasurementUnit: "г"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name want ErrValidation got %v", err)
	}
}

func TestIngredientServiceImportCSV(t *testing.T) {
	db := openServiceTestDB(t)
	createServiceIngredient(t, db, "соль", "г")
	svc := NewIngredientService(repository.NewIngredientRepository(db))

	input := "name,measurement_unit\n" +
		"соль,г\n" +
		"перец,г\n" +
		"перец,г\n" +
		"\"масло, сливочное\",г\n"
	result, err := svc.ImportCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Total != 3 || result.Inserted != 2 || result.Skipped != 1 {
		t.Fatalf("unexpected import result: %+v", result)
	}

	found, err := svc.Search("масло")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 1 || found[0].Name != "масло, сливочное" {
		t.Fatalf("quoted name should be imported: %+v", found)
	}

	if _, err := svc.ImportCSV(strings.NewReader("name,measurement_unit\nтолько_имя\n")); !errors.Is(err, ErrIngredientCSVInvalid) {
		t.Fatalf("short row want ErrIngredientCSVInvalid got %v", err)
	}
}

func TestIngredientServiceImportCSVStripsByteOrderMark(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewIngredientService(repository.NewIngredientRepository(db))

	result, err := svc.ImportCSV(strings.NewReader("\uFEFFname,measurement_unit\nмука,г\n"))
	if err != nil {
		t.Fatalf("import with BOM header failed: %v", err)
	}
	if result.Total != 1 || result.Inserted != 1 {
		t.Fatalf("BOM header must be skipped, got %+v", result)
	}

	// 无表头时 BOM 落在首个名称上
	result, err = svc.ImportCSV(strings.NewReader("\uFEFFсахар,г\n"))
	if err != nil {
		t.Fatalf("import headerless BOM failed: %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("unexpected import result: %+v", result)
	}
	found, err := svc.Search("сахар")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 1 || found[0].Name != "сахар" {
		t.Fatalf("BOM must not be stored in name: %+v", found)
	}
}

func TestIngredientServiceExportCSV(t *testing.T) {
	db := openServiceTestDB(t)
	createServiceIngredient(t, db, "яйцо", "шт")
	createServiceIngredient(t, db, "мука", "г")
	svc := NewIngredientService(repository.NewIngredientRepository(db))

	var buf bytes.Buffer
	if err := svc.ExportCSV(&buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[0] != "name,measurement_unit" {
		t.Fatalf("unexpected export: %q", buf.String())
	}
}

func TestIngredientServiceDeleteInUse(t *testing.T) {
	db := openServiceTestDB(t)
	author := createServiceUser(t, db, "author")
	flour := createServiceIngredient(t, db, "мука", "г")
	if err := db.Exec("INSERT INTO recipes (id, author_id, name, text, cooking_time, created_at, updated_at) VALUES (1, ?, 'Хлеб', 'text', 30, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)", author.ID).Error; err != nil {
		t.Fatalf("insert recipe failed: %v", err)
	}
	if err := db.Exec("INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES (1, ?, 500)", flour.ID).Error; err != nil {
		t.Fatalf("insert recipe ingredient failed: %v", err)
	}

	svc := NewIngredientService(repository.NewIngredientRepository(db))
	if err := svc.Delete(flour.ID); !errors.Is(err, ErrIngredientInUse) {
		t.Fatalf("ingredient in use want ErrIngredientInUse got %v", err)
	}
}
