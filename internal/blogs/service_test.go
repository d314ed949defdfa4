package blogs

import (
	"testing"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
)

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func TestApplyUpdateToBlogPartial(t *testing.T) {
	row := &models.Blog{
		Title:       "Original Title",
		H1:          "Original H1",
		Content:     "body",
		AuthorName:  "Priya",
		IsPublished: false,
	}

	applyUpdateToBlog(row, UpdateBlogInput{
		Title:       strPtr("  New Title  "),
		IsPublished: boolPtr(true),
	})

	if row.Title != "New Title" {
		t.Fatalf("expected trimmed title, got %q", row.Title)
	}
	if !row.IsPublished {
		t.Fatal("expected publish flag to flip")
	}
	if row.H1 != "Original H1" || row.Content != "body" || row.AuthorName != "Priya" {
		t.Fatal("untouched fields must not change")
	}
}

func TestApplyUpdateToBlogNullableFields(t *testing.T) {
	row := &models.Blog{}

	applyUpdateToBlog(row, UpdateBlogInput{
		ImageCaption: strPtr("a tidy kitchen"),
		CanonicalURL: strPtr("https://fixnest.in/blog/spring-cleaning"),
	})

	if row.ImageCaption == nil || *row.ImageCaption != "a tidy kitchen" {
		t.Fatalf("expected image caption set, got %v", row.ImageCaption)
	}
	if row.CanonicalURL == nil || *row.CanonicalURL != "https://fixnest.in/blog/spring-cleaning" {
		t.Fatalf("expected canonical url set, got %v", row.CanonicalURL)
	}
}
