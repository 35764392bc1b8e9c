package domain

// BlogSummary is the reduced view returned for the most liked blog.
type BlogSummary struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorBlogCount pairs an author with how many blogs they wrote.
type AuthorBlogCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes pairs an author with the likes summed over their blogs.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums likes over blogs.
func TotalLikes(blogs []*Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes. On a tie the earliest
// blog wins. Returns nil for an empty list.
func FavoriteBlog(blogs []*Blog) *BlogSummary {
	if len(blogs) == 0 {
		return nil
	}

	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}

	return &BlogSummary{Title: fav.Title, Author: fav.Author, Likes: fav.Likes}
}

// MostBlogs returns the author with the most blogs. Ties go to the author
// seen first. Returns nil for an empty list.
func MostBlogs(blogs []*Blog) *AuthorBlogCount {
	authors, counts := groupByAuthor(blogs, func(*Blog) int { return 1 })
	if len(authors) == 0 {
		return nil
	}

	best := authors[0]
	for _, a := range authors[1:] {
		if counts[a] > counts[best] {
			best = a
		}
	}

	return &AuthorBlogCount{Author: best, Blogs: counts[best]}
}

// MostLikes returns the author whose blogs have the most likes in total. Ties
// go to the author seen first. Returns nil for an empty list.
func MostLikes(blogs []*Blog) *AuthorLikes {
	authors, sums := groupByAuthor(blogs, func(b *Blog) int { return b.Likes })
	if len(authors) == 0 {
		return nil
	}

	best := authors[0]
	for _, a := range authors[1:] {
		if sums[a] > sums[best] {
			best = a
		}
	}

	return &AuthorLikes{Author: best, Likes: sums[best]}
}

// groupByAuthor folds value(b) per author and returns authors in first-seen order.
func groupByAuthor(blogs []*Blog, value func(*Blog) int) ([]string, map[string]int) {
	order := make([]string, 0)
	totals := make(map[string]int)
	for _, b := range blogs {
		if _, seen := totals[b.Author]; !seen {
			order = append(order, b.Author)
		}
		totals[b.Author] += value(b)
	}
	return order, totals
}
