package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

const (
	maxIngredientNameLength = 128
	maxIngredientUnitLength = 64
	maxIngredientImportRows = 50000
)

var ingredientCSVHeader = []string{"name", "measurement_unit"}

// IngredientService 食材服务
type IngredientService struct {
	repo repository.IngredientRepository
}

// NewIngredientService 创建食材服务
func NewIngredientService(repo repository.IngredientRepository) *IngredientService {
	return &IngredientService{repo: repo}
}

// IngredientInput 食材写入参数
type IngredientInput struct {
	Name            string
	MeasurementUnit string
}

// IngredientImportResult 导入结果
type IngredientImportResult struct {
	Total    int   `json:"total"`
	Inserted int64 `json:"inserted"`
	Skipped  int64 `json:"skipped"`
}

// Search 按名称搜索，不分页
func (s *IngredientService) Search(name string) ([]models.Ingredient, error) {
	items, _, err := s.repo.List(repository.IngredientListFilter{Name: name})
	return items, err
}

// List 后台分页列表
func (s *IngredientService) List(filter repository.IngredientListFilter) ([]models.Ingredient, int64, error) {
	return s.repo.List(filter)
}

// Get 获取食材
func (s *IngredientService) Get(id uint) (*models.Ingredient, error) {
	ingredient, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, ErrIngredientNotFound
	}
	return ingredient, nil
}

// Create 创建食材
func (s *IngredientService) Create(input IngredientInput) (*models.Ingredient, error) {
	name, unit, err := normalizeIngredientInput(input)
	if err != nil {
		return nil, err
	}
	exist, err := s.repo.GetByNameUnit(name, unit)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrIngredientExists
	}
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := s.repo.Create(ingredient); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrIngredientExists
		}
		return nil, err
	}
	return ingredient, nil
}

// Update 更新食材
func (s *IngredientService) Update(id uint, input IngredientInput) (*models.Ingredient, error) {
	ingredient, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	name, unit, err := normalizeIngredientInput(input)
	if err != nil {
		return nil, err
	}
	exist, err := s.repo.GetByNameUnit(name, unit)
	if err != nil {
		return nil, err
	}
	if exist != nil && exist.ID != id {
		return nil, ErrIngredientExists
	}
	ingredient.Name = name
	ingredient.MeasurementUnit = unit
	if err := s.repo.Update(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Delete 删除食材，被菜谱引用时拒绝
func (s *IngredientService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	count, err := s.repo.CountUsage(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrIngredientInUse
	}
	return s.repo.Delete(id)
}

// ImportCSV 导入 name,measurement_unit 格式的 CSV，已存在的组合跳过
func (s *IngredientService) ImportCSV(r io.Reader) (*IngredientImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	items := make([]models.Ingredient, 0)
	seen := make(map[string]struct{})
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIngredientCSVInvalid, err)
		}
		line++
		if line == 1 && isIngredientCSVHeader(record) {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: line %d", ErrIngredientCSVInvalid, line)
		}
		name, unit, err := normalizeIngredientInput(IngredientInput{Name: record[0], MeasurementUnit: record[1]})
		if err != nil {
			return nil, fmt.Errorf("%w: line %d", ErrIngredientCSVInvalid, line)
		}
		key := name + "\x00" + unit
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, models.Ingredient{Name: name, MeasurementUnit: unit})
		if len(items) > maxIngredientImportRows {
			return nil, fmt.Errorf("%w: too many rows", ErrIngredientCSVInvalid)
		}
	}

	inserted, err := s.repo.BulkCreate(items)
	if err != nil {
		return nil, err
	}
	return &IngredientImportResult{
		Total:    len(items),
		Inserted: inserted,
		Skipped:  int64(len(items)) - inserted,
	}, nil
}

// ExportCSV 导出全部食材
func (s *IngredientService) ExportCSV(w io.Writer) error {
	items, err := s.repo.ListAll()
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(ingredientCSVHeader); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write([]string{item.Name, item.MeasurementUnit}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func isIngredientCSVHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(record[0], "\uFEFF")))
	second := strings.ToLower(strings.TrimSpace(record[1]))
	return first == ingredientCSVHeader[0] && second == ingredientCSVHeader[1]
}

func normalizeIngredientInput(input IngredientInput) (string, string, error) {
	name := strings.TrimSpace(strings.TrimPrefix(input.Name, "\uFEFF"))
	if name == "" || utf8.RuneCountInString(name) > maxIngredientNameLength {
		return "", "", newValidationError("name", "validation.ingredient_name_invalid", maxIngredientNameLength)
	}
	unit := strings.TrimSpace(input.MeasurementUnit)
	if unit == "" || utf8.RuneCountInString(unit) > maxIngredientUnitLength {
		return "", "", newValidationError("measurement_unit", "validation.ingredient_unit_invalid", maxIngredientUnitLength)
	}
	return name, unit, nil
}
