package entity

import "time"

// BookmarkID uniquely identifies a bookmark.
type BookmarkID int64

// Bookmark represents a bookmarked URL. Bookmarks are de-duplicated by URL
// equality at toggle time.
type Bookmark struct {
	ID         BookmarkID `json:"id"`
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	FaviconURL string     `json:"favicon"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewBookmark creates a new bookmark for a URL.
func NewBookmark(url, title string) *Bookmark {
	return &Bookmark{
		URL:       url,
		Title:     title,
		CreatedAt: time.Now(),
	}
}
