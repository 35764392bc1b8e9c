package domain

import (
	"testing"
)

func sampleBlogs() []*Blog {
	return []*Blog{
		{Title: "React patterns", Author: "Michael Chan", Likes: 7},
		{Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", Likes: 5},
		{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", Likes: 12},
		{Title: "First class tests", Author: "Robert C. Martin", Likes: 10},
		{Title: "TDD harms architecture", Author: "Robert C. Martin", Likes: 0},
		{Title: "Type wars", Author: "Robert C. Martin", Likes: 2},
	}
}

func TestTotalLikes(t *testing.T) {
	if got := TotalLikes(nil); got != 0 {
		t.Errorf("Expected 0 for empty list, got %d", got)
	}
	if got := TotalLikes(sampleBlogs()[:1]); got != 7 {
		t.Errorf("Expected 7 for one blog, got %d", got)
	}
	if got := TotalLikes(sampleBlogs()); got != 36 {
		t.Errorf("Expected 36, got %d", got)
	}
}

func TestFavoriteBlog(t *testing.T) {
	if got := FavoriteBlog(nil); got != nil {
		t.Errorf("Expected nil for empty list, got %+v", got)
	}

	got := FavoriteBlog(sampleBlogs())
	want := BlogSummary{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", Likes: 12}
	if got == nil || *got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	tied := []*Blog{
		{Title: "first", Author: "a", Likes: 3},
		{Title: "second", Author: "b", Likes: 3},
	}
	if got := FavoriteBlog(tied); got.Title != "first" {
		t.Errorf("Expected earliest blog to win a tie, got %s", got.Title)
	}
}

func TestMostBlogs(t *testing.T) {
	if got := MostBlogs(nil); got != nil {
		t.Errorf("Expected nil for empty list, got %+v", got)
	}

	got := MostBlogs(sampleBlogs())
	if got == nil || *got != (AuthorBlogCount{Author: "Robert C. Martin", Blogs: 3}) {
		t.Errorf("Unexpected result %+v", got)
	}

	tied := []*Blog{{Author: "b"}, {Author: "a"}, {Author: "a"}, {Author: "b"}}
	if got := MostBlogs(tied); got.Author != "b" {
		t.Errorf("Expected first-seen author to win a tie, got %s", got.Author)
	}
}

func TestMostLikes(t *testing.T) {
	if got := MostLikes(nil); got != nil {
		t.Errorf("Expected nil for empty list, got %+v", got)
	}

	got := MostLikes(sampleBlogs())
	if got == nil || *got != (AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}) {
		t.Errorf("Unexpected result %+v", got)
	}
}
