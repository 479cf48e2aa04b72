package service

import (
	"context"
	"strings"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// UserService 用户资料服务
type UserService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	recipeRepo       repository.RecipeRepository
	membershipRepo   repository.MembershipRepository
	images           *ImageService
}

// NewUserService 创建用户资料服务
func NewUserService(
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
	recipeRepo repository.RecipeRepository,
	membershipRepo repository.MembershipRepository,
	images *ImageService,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		recipeRepo:       recipeRepo,
		membershipRepo:   membershipRepo,
		images:           images,
	}
}

// AdminUserDetail 后台用户详情
type AdminUserDetail struct {
	User             *models.User `json:"user"`
	Avatar           string       `json:"avatar"`
	RecipesCount     int64        `json:"recipes_count"`
	SubscribersCount int64        `json:"subscribers_count"`
	FavoritesCount   int64        `json:"favorites_count"`
	CartCount        int64        `json:"shopping_cart_count"`
}

// List 用户列表，viewerID 为 0 时 is_subscribed 恒为 false
func (s *UserService) List(page, pageSize int, viewerID uint) ([]UserView, int64, error) {
	users, total, err := s.userRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   constants.UserStatusActive,
	})
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	subscribed, err := s.subscriptionRepo.AuthorIDsIn(viewerID, ids)
	if err != nil {
		return nil, 0, err
	}
	views := make([]UserView, 0, len(users))
	for i := range users {
		_, ok := subscribed[users[i].ID]
		views = append(views, toUserView(&users[i], ok, s.images))
	}
	return views, total, nil
}

// Get 获取用户资料
func (s *UserService) Get(id, viewerID uint) (*UserView, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	isSubscribed := false
	if viewerID != 0 && viewerID != id {
		isSubscribed, err = s.subscriptionRepo.Exists(viewerID, id)
		if err != nil {
			return nil, err
		}
	}
	view := toUserView(user, isSubscribed, s.images)
	return &view, nil
}

// UpdateAvatar 更新头像，返回新头像地址
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, dataURI string) (string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrNotFound
	}
	if strings.TrimSpace(dataURI) == "" {
		return "", newValidationError("avatar", "validation.required")
	}
	key, err := s.images.SaveDataURI(ctx, constants.ImageSceneAvatar, dataURI)
	if err != nil {
		return "", err
	}
	oldKey := user.Avatar
	user.Avatar = key
	if err := s.userRepo.Update(user); err != nil {
		s.images.ScheduleCleanup(ctx, key, "avatar_update_failed")
		return "", err
	}
	s.images.ScheduleCleanup(ctx, oldKey, "avatar_replaced")
	return s.images.URL(key), nil
}

// DeleteAvatar 删除头像
func (s *UserService) DeleteAvatar(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.Avatar == "" {
		return nil
	}
	oldKey := user.Avatar
	user.Avatar = ""
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	s.images.ScheduleCleanup(ctx, oldKey, "avatar_deleted")
	return nil
}

// AdminList 后台用户列表
func (s *UserService) AdminList(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// AdminDetail 后台用户详情
func (s *UserService) AdminDetail(id uint) (*AdminUserDetail, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	detail := &AdminUserDetail{User: user, Avatar: s.images.URL(user.Avatar)}
	if detail.RecipesCount, err = s.recipeRepo.CountByAuthor(id); err != nil {
		return nil, err
	}
	if detail.SubscribersCount, err = s.subscriptionRepo.CountSubscribers(id); err != nil {
		return nil, err
	}
	if detail.FavoritesCount, err = s.membershipRepo.CountByUser(models.MembershipFavorite, id); err != nil {
		return nil, err
	}
	if detail.CartCount, err = s.membershipRepo.CountByUser(models.MembershipShoppingCart, id); err != nil {
		return nil, err
	}
	return detail, nil
}

// BatchUpdateStatus 批量启用/禁用用户
func (s *UserService) BatchUpdateStatus(userIDs []uint, status string) error {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if normalized != constants.UserStatusActive && normalized != constants.UserStatusDisabled {
		return newValidationError("status", "validation.user_status_invalid")
	}
	if err := s.userRepo.BatchUpdateStatus(userIDs, normalized); err != nil {
		return err
	}
	for _, id := range userIDs {
		_ = cache.ForgetUser(context.Background(), id)
	}
	return nil
}
