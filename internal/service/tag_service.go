package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

var tagSlugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

const maxTagLength = 32

// TagService 标签服务
type TagService struct {
	repo repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

// TagInput 标签写入参数
type TagInput struct {
	Name string
	Slug string
}

// List 获取全部标签
func (s *TagService) List() ([]TagView, error) {
	tags, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return toTagViews(tags), nil
}

// Get 获取标签
func (s *TagService) Get(id uint) (*TagView, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return &TagView{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}, nil
}

// Create 创建标签
func (s *TagService) Create(input TagInput) (*models.Tag, error) {
	name, slug, err := normalizeTagInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(slug, 0); err != nil {
		return nil, err
	}
	tag := &models.Tag{Name: name, Slug: slug}
	if err := s.repo.Create(tag); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTagNameExists
		}
		return nil, err
	}
	return tag, nil
}

// Update 更新标签
func (s *TagService) Update(id uint, input TagInput) (*models.Tag, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	name, slug, err := normalizeTagInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(slug, id); err != nil {
		return nil, err
	}
	tag.Name = name
	tag.Slug = slug
	if err := s.repo.Update(tag); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTagNameExists
		}
		return nil, err
	}
	return tag, nil
}

// Delete 删除标签，仍被菜谱使用时拒绝
func (s *TagService) Delete(id uint) error {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrTagNotFound
	}
	count, err := s.repo.CountRecipes(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTagInUse
	}
	return s.repo.Delete(id)
}

func (s *TagService) ensureSlugFree(slug string, selfID uint) error {
	exist, err := s.repo.GetBySlug(slug)
	if err != nil {
		return err
	}
	if exist != nil && exist.ID != selfID {
		return ErrSlugExists
	}
	return nil
}

func normalizeTagInput(input TagInput) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > maxTagLength {
		return "", "", newValidationError("name", "validation.tag_name_invalid", maxTagLength)
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || len(slug) > maxTagLength || !tagSlugPattern.MatchString(slug) {
		return "", "", newValidationError("slug", "validation.tag_slug_invalid")
	}
	return name, slug, nil
}
