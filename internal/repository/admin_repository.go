package repository

import (
	"strings"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// AdminRepository 后台账号存取
type AdminRepository interface {
	GetByUsername(username string) (*models.Admin, error)
	GetByID(id uint) (*models.Admin, error)
	List() ([]models.Admin, error)
	Create(admin *models.Admin) error
	Update(admin *models.Admin) error
	SetDisabled(id uint, disabled bool) error
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建管理员仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	return firstOrNil[models.Admin](r.db.Where("username = ?", strings.TrimSpace(username)))
}

func (r *GormAdminRepository) GetByID(id uint) (*models.Admin, error) {
	return firstOrNil[models.Admin](r.db, id)
}

// List 不加载密码哈希
func (r *GormAdminRepository) List() ([]models.Admin, error) {
	var admins []models.Admin
	err := r.db.Omit("password_hash").Order("id").Find(&admins).Error
	if admins == nil {
		admins = []models.Admin{}
	}
	return admins, err
}

func (r *GormAdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

func (r *GormAdminRepository) Update(admin *models.Admin) error {
	return r.db.Save(admin).Error
}

// SetDisabled 停用时递增 token_version，已登录会话随之失效
func (r *GormAdminRepository) SetDisabled(id uint, disabled bool) error {
	updates := map[string]interface{}{"disabled": disabled}
	if disabled {
		updates["token_version"] = gorm.Expr("token_version + 1")
	}
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Updates(updates).Error
}
