package repository

import (
	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository 订阅数据访问接口
type SubscriptionRepository interface {
	Exists(userID, authorID uint) (bool, error)
	Create(subscription *models.Subscription) error
	Delete(userID, authorID uint) (int64, error)
	ListAuthors(filter SubscriptionListFilter) ([]models.User, int64, error)
	AuthorIDsIn(userID uint, authorIDs []uint) (map[uint]struct{}, error)
	CountSubscribers(authorID uint) (int64, error)
}

// GormSubscriptionRepository GORM 实现
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository 创建订阅仓库
func NewSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Exists 判断是否已订阅
func (r *GormSubscriptionRepository) Exists(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建订阅
func (r *GormSubscriptionRepository) Create(subscription *models.Subscription) error {
	return r.db.Omit("User", "Author").Create(subscription).Error
}

// Delete 取消订阅，返回删除行数
func (r *GormSubscriptionRepository) Delete(userID, authorID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Subscription{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListAuthors 用户订阅的作者列表，按订阅先后排序
func (r *GormSubscriptionRepository) ListAuthors(filter SubscriptionListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", filter.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	authors := make([]models.User, 0)
	if err := query.Order("subscriptions.id ASC").Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

// AuthorIDsIn 返回给定作者中已被用户订阅的 ID 集合
func (r *GormSubscriptionRepository) AuthorIDsIn(userID uint, authorIDs []uint) (map[uint]struct{}, error) {
	result := make(map[uint]struct{}, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return result, nil
	}
	var ids []uint
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result, nil
}

// CountSubscribers 统计作者的订阅者数量
func (r *GormSubscriptionRepository) CountSubscribers(authorID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Subscription{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
