package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewBlog(t *testing.T) {
	owner := uuid.New()

	blog, err := NewBlog(owner, "T", "", "U", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if blog.ID == uuid.Nil {
		t.Error("Expected an id to be assigned")
	}
	if blog.OwnerID != owner {
		t.Errorf("Expected owner %s, got %s", owner, blog.OwnerID)
	}

	if _, err := NewBlog(owner, "", "", "U", 0); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for missing title, got %v", err)
	}
	if _, err := NewBlog(owner, "T", "", "", 0); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for missing url, got %v", err)
	}
	if _, err := NewBlog(uuid.Nil, "T", "", "U", 0); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for missing owner, got %v", err)
	}
}

func TestNewBlogKeepsNegativeLikes(t *testing.T) {
	blog, err := NewBlog(uuid.New(), "T", "", "U", -3)
	if err != nil {
		t.Fatalf("Expected field validation to pass, got %v", err)
	}

	err = blog.Validate()
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "likes" {
		t.Errorf("Expected likes validation error from Validate, got %v", err)
	}
}

func TestBlogIsOwnedBy(t *testing.T) {
	owner := uuid.New()
	blog := &Blog{ID: uuid.New(), OwnerID: owner}

	if !blog.IsOwnedBy(owner) {
		t.Error("Expected owner to own blog")
	}

	parsed := uuid.MustParse(owner.String())
	if !blog.IsOwnedBy(parsed) {
		t.Error("Expected re-parsed owner id to own blog")
	}

	if blog.IsOwnedBy(uuid.New()) {
		t.Error("Expected stranger not to own blog")
	}
}
