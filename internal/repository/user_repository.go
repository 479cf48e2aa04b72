package repository

import (
	"strings"
	"time"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户存取
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	List(filter UserListFilter) ([]models.User, int64, error)
	BatchUpdateStatus(userIDs []uint, status string) error
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByEmail 邮箱不区分大小写
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return firstOrNil[models.User](r.db.Where("LOWER(email) = ?", normalized))
}

// GetByUsername 根据用户名获取用户
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	return firstOrNil[models.User](r.db.Where("username = ?", strings.TrimSpace(username)))
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return firstOrNil[models.User](r.db, id)
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// List 后台用户列表，keyword 同时匹配邮箱、用户名与姓名
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).Scopes(r.filterUsers(filter))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	users := []models.User{}
	err := query.Scopes(paginate(filter.Page, filter.PageSize)).Order("id").Find(&users).Error
	return users, total, err
}

func (r *GormUserRepository) filterUsers(filter UserListFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
			q = q.Scopes(matchAny(containsPattern(keyword), "email", "username", "first_name", "last_name"))
		}
		if status := strings.TrimSpace(filter.Status); status != "" {
			q = q.Where("status = ?", status)
		}
		if filter.CreatedFrom != nil {
			q = q.Where("created_at >= ?", *filter.CreatedFrom)
		}
		if filter.CreatedTo != nil {
			q = q.Where("created_at <= ?", *filter.CreatedTo)
		}
		return q
	}
}

// BatchUpdateStatus 停用时同时吊销已签发令牌
func (r *GormUserRepository) BatchUpdateStatus(userIDs []uint, status string) error {
	if len(userIDs) == 0 {
		return nil
	}
	now := time.Now()
	updates := map[string]interface{}{"status": status, "updated_at": now}
	if strings.EqualFold(strings.TrimSpace(status), constants.UserStatusDisabled) {
		updates["token_invalid_before"] = now
		updates["token_version"] = gorm.Expr("token_version + 1")
	}
	return r.db.Model(&models.User{}).Where("id IN ?", userIDs).Updates(updates).Error
}
