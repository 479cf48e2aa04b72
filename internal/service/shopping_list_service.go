package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/metrics"
	"github.com/foodgram-next/internal/repository"
)

// ShoppingListExport 导出结果
type ShoppingListExport struct {
	Filename string
	Content  string
	// Items 为 0 表示购物车为空，Content 仅含表头
	Items int
}

// ShoppingListService 购物清单聚合服务，只读无副作用
type ShoppingListService struct {
	repo        repository.ShoppingListRepository
	groupByUnit bool
	filename    string
}

// NewShoppingListService 创建购物清单服务
func NewShoppingListService(repo repository.ShoppingListRepository, cfg config.ShoppingListConfig) *ShoppingListService {
	filename := strings.TrimSpace(cfg.Filename)
	if filename == "" {
		filename = constants.ShoppingListFilename
	}
	return &ShoppingListService{
		repo:        repo,
		groupByUnit: cfg.GroupByUnit,
		filename:    filename,
	}
}

// Export 聚合用户购物车内全部菜谱的食材并渲染为文本
func (s *ShoppingListService) Export(ctx context.Context, userID uint) (*ShoppingListExport, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	rows, err := s.repo.ListRows(ctx, userID)
	if err != nil {
		metrics.RecordShoppingListExport("error")
		logger.Errorw("shopping_list_rows_load_failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrShoppingListFailure, err)
	}

	groups := AggregateShoppingList(rows, s.groupByUnit)
	result := "ok"
	if len(groups) == 0 {
		result = "empty"
	}
	metrics.RecordShoppingListExport(result)

	return &ShoppingListExport{
		Filename: s.filename,
		Content:  RenderShoppingList(groups),
		Items:    len(groups),
	}, nil
}

// ShoppingListGroup 聚合后的一行
type ShoppingListGroup struct {
	Name  string
	Total int
	Unit  string
}

type shoppingListKey struct {
	name string
	unit string
}

// AggregateShoppingList 按名称分组求和，单位取遍历中最后出现的一个；
// groupByUnit 为 true 时按 (名称, 单位) 分组。结果按名称字节序升序。
func AggregateShoppingList(rows []repository.ShoppingListRow, groupByUnit bool) []ShoppingListGroup {
	index := make(map[shoppingListKey]int, len(rows))
	groups := make([]ShoppingListGroup, 0, len(rows))
	for _, row := range rows {
		key := shoppingListKey{name: row.Name}
		if groupByUnit {
			key.unit = row.MeasurementUnit
		}
		if idx, ok := index[key]; ok {
			groups[idx].Total += row.Amount
			groups[idx].Unit = row.MeasurementUnit
			continue
		}
		index[key] = len(groups)
		groups = append(groups, ShoppingListGroup{
			Name:  row.Name,
			Total: row.Amount,
			Unit:  row.MeasurementUnit,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Name != groups[j].Name {
			return groups[i].Name < groups[j].Name
		}
		return groups[i].Unit < groups[j].Unit
	})
	return groups
}

// RenderShoppingList 渲染文本，每行以换行结尾
func RenderShoppingList(groups []ShoppingListGroup) string {
	var b strings.Builder
	b.WriteString(constants.ShoppingListHeader)
	b.WriteByte('\n')
	for _, group := range groups {
		b.WriteString(group.Name)
		b.WriteString(" - ")
		b.WriteString(strconv.Itoa(group.Total))
		b.WriteString(" (")
		b.WriteString(group.Unit)
		b.WriteString(").\n")
	}
	return b.String()
}
