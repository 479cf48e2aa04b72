package repository

import "time"

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// RecipeListFilter 查询菜谱列表的过滤条件
type RecipeListFilter struct {
	Page     int
	PageSize int
	AuthorID uint
	// TagSlugs 任一标签命中即返回
	TagSlugs []string
	Search   string
	// ViewerID 为 0 时忽略 OnlyFavorited / OnlyInShoppingCart
	ViewerID           uint
	OnlyFavorited      bool
	OnlyInShoppingCart bool
	WithDetails        bool
}

// IngredientListFilter 查询食材列表的过滤条件
type IngredientListFilter struct {
	Page     int
	PageSize int
	Name     string
}

// SubscriptionListFilter 查询订阅列表的过滤条件
type SubscriptionListFilter struct {
	Page     int
	PageSize int
	UserID   uint
}

// ShoppingListRow 购物清单聚合前的原始行（一条菜谱食材记录）
type ShoppingListRow struct {
	Name            string
	Amount          int
	MeasurementUnit string
}
