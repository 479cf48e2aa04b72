package service

import (
	"errors"
	"testing"

	"github.com/foodgram-next/internal/repository"
)

func TestTagServiceCRUD(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewTagService(repository.NewTagRepository(db))

	lunch, err := svc.Create(TagInput{Name: " Обед ", Slug: "lunch"})
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	if lunch.Name != "Обед" {
		t.Fatalf("name should be trimmed, got %q", lunch.Name)
	}
	if _, err := svc.Create(TagInput{Name: "Ланч", Slug: "lunch"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate slug want ErrSlugExists got %v", err)
	}
	if _, err := svc.Create(TagInput{Name: "Обед", Slug: "obed"}); !errors.Is(err, ErrTagNameExists) {
		t.Fatalf("duplicate name want ErrTagNameExists got %v", err)
	}
	if _, err := svc.Create(TagInput{Name: "Ужин", Slug: "у жин"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad slug want ErrValidation got %v", err)
	}

	breakfast, err := svc.Create(TagInput{Name: "Завтрак", Slug: "breakfast"})
	if err != nil {
		t.Fatalf("create breakfast failed: %v", err)
	}
	if _, err := svc.Update(breakfast.ID, TagInput{Name: "Завтрак", Slug: "lunch"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("update to taken slug want ErrSlugExists got %v", err)
	}
	if _, err := svc.Update(breakfast.ID, TagInput{Name: "Ранний завтрак", Slug: "breakfast"}); err != nil {
		t.Fatalf("update keeping own slug failed: %v", err)
	}

	views, err := svc.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 || views[0].Slug != "lunch" || views[1].Slug != "breakfast" {
		t.Fatalf("tags should be ordered by name: %+v", views)
	}

	if err := svc.Delete(lunch.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(lunch.ID); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("deleted tag want ErrTagNotFound got %v", err)
	}
}

func TestTagServiceDeleteInUse(t *testing.T) {
	db := openServiceTestDB(t)
	author := createServiceUser(t, db, "author")
	tag := createServiceTag(t, db, "Ужин", "dinner")
	if err := db.Exec("INSERT INTO recipes (id, author_id, name, text, cooking_time, created_at, updated_at) VALUES (1, ?, 'Рагу', 'text', 30, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)", author.ID).Error; err != nil {
		t.Fatalf("insert recipe failed: %v", err)
	}
	if err := db.Exec("INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (1, ?)", tag.ID).Error; err != nil {
		t.Fatalf("insert recipe tag failed: %v", err)
	}

	svc := NewTagService(repository.NewTagRepository(db))
	if err := svc.Delete(tag.ID); !errors.Is(err, ErrTagInUse) {
		t.Fatalf("tag in use want ErrTagInUse got %v", err)
	}
}
