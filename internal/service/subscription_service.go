package service

import (
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// SubscriptionService 订阅服务
type SubscriptionService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	recipeRepo       repository.RecipeRepository
	images           *ImageService
}

// NewSubscriptionService 创建订阅服务
func NewSubscriptionService(
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
	recipeRepo repository.RecipeRepository,
	images *ImageService,
) *SubscriptionService {
	return &SubscriptionService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		recipeRepo:       recipeRepo,
		images:           images,
	}
}

// Subscribe 订阅作者，返回作者及其菜谱
func (s *SubscriptionService) Subscribe(userID, authorID uint, recipesLimit int) (*SubscriptionView, error) {
	if userID == authorID {
		return nil, ErrSelfSubscribe
	}
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}
	exists, err := s.subscriptionRepo.Exists(userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}
	if err := s.subscriptionRepo.Create(&models.Subscription{UserID: userID, AuthorID: authorID}); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return s.buildView(author, true, recipesLimit)
}

// Unsubscribe 取消订阅
func (s *SubscriptionService) Unsubscribe(userID, authorID uint) error {
	if userID == authorID {
		return ErrSelfSubscribe
	}
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return err
	}
	if author == nil {
		return ErrAuthorNotFound
	}
	deleted, err := s.subscriptionRepo.Delete(userID, authorID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotSubscribed
	}
	return nil
}

// List 当前用户订阅的作者，recipesLimit<=0 表示返回全部菜谱
func (s *SubscriptionService) List(userID uint, page, pageSize, recipesLimit int) ([]SubscriptionView, int64, error) {
	authors, total, err := s.subscriptionRepo.ListAuthors(repository.SubscriptionListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, 0, len(authors))
	for _, author := range authors {
		ids = append(ids, author.ID)
	}
	counts, err := s.recipeRepo.CountByAuthors(ids)
	if err != nil {
		return nil, 0, err
	}

	views := make([]SubscriptionView, 0, len(authors))
	for i := range authors {
		recipes, err := s.recipeRepo.ListByAuthor(authors[i].ID, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, SubscriptionView{
			UserView:     toUserView(&authors[i], true, s.images),
			Recipes:      s.toShortViews(recipes),
			RecipesCount: counts[authors[i].ID],
		})
	}
	return views, total, nil
}

func (s *SubscriptionService) buildView(author *models.User, isSubscribed bool, recipesLimit int) (*SubscriptionView, error) {
	recipes, err := s.recipeRepo.ListByAuthor(author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return nil, err
	}
	return &SubscriptionView{
		UserView:     toUserView(author, isSubscribed, s.images),
		Recipes:      s.toShortViews(recipes),
		RecipesCount: count,
	}, nil
}

func (s *SubscriptionService) toShortViews(recipes []models.Recipe) []RecipeShortView {
	result := make([]RecipeShortView, 0, len(recipes))
	for i := range recipes {
		result = append(result, toRecipeShortView(&recipes[i], s.images))
	}
	return result
}
