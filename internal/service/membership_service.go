package service

import (
	"errors"

	"github.com/foodgram-next/internal/metrics"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// MembershipService 收藏/购物车通用服务，按 MembershipKind 区分
type MembershipService struct {
	recipeRepo     repository.RecipeRepository
	membershipRepo repository.MembershipRepository
	images         *ImageService
}

// NewMembershipService 创建清单服务
func NewMembershipService(
	recipeRepo repository.RecipeRepository,
	membershipRepo repository.MembershipRepository,
	images *ImageService,
) *MembershipService {
	return &MembershipService{
		recipeRepo:     recipeRepo,
		membershipRepo: membershipRepo,
		images:         images,
	}
}

// Add 将菜谱加入清单，返回菜谱摘要
func (s *MembershipService) Add(kind models.MembershipKind, userID, recipeID uint) (*RecipeShortView, error) {
	if !kind.Valid() {
		return nil, ErrUnknownListKind
	}
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	exists, err := s.membershipRepo.Exists(kind, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInList
	}
	if _, err := s.membershipRepo.Create(kind, userID, recipeID); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyInList
		}
		return nil, mapMembershipError(err)
	}
	metrics.RecordMembershipToggle(string(kind), "add")
	view := toRecipeShortView(recipe, s.images)
	return &view, nil
}

// Remove 将菜谱移出清单
func (s *MembershipService) Remove(kind models.MembershipKind, userID, recipeID uint) error {
	if !kind.Valid() {
		return ErrUnknownListKind
	}
	exists, err := s.recipeRepo.Exists(recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecipeNotFound
	}
	deleted, err := s.membershipRepo.Delete(kind, userID, recipeID)
	if err != nil {
		return mapMembershipError(err)
	}
	if deleted == 0 {
		return ErrNotInList
	}
	metrics.RecordMembershipToggle(string(kind), "remove")
	return nil
}

// Clear 清空用户的某类清单，返回删除条数；清单本就为空不算错误
func (s *MembershipService) Clear(kind models.MembershipKind, userID uint) (int64, error) {
	if !kind.Valid() {
		return 0, ErrUnknownListKind
	}
	removed, err := s.membershipRepo.ClearByUser(kind, userID)
	if err != nil {
		return 0, mapMembershipError(err)
	}
	if removed > 0 {
		metrics.RecordMembershipToggle(string(kind), "clear")
	}
	return removed, nil
}

func mapMembershipError(err error) error {
	if errors.Is(err, repository.ErrUnknownMembershipKind) {
		return ErrUnknownListKind
	}
	return err
}
