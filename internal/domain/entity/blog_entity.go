package entity

import (
	"encoding/json"
	"time"
)

// Blog is a post. Content is the editor's block document stored verbatim.
type Blog struct {
	ID          string
	BlogID      string // URL slug, unique
	Title       string
	Des         string
	Banner      string
	Content     json.RawMessage
	Tags        []string
	AuthorID    string
	Draft       bool
	TotalReads  int64
	TotalLikes  int64
	PublishedAt time.Time
	UpdatedAt   time.Time

	// Author projection, populated on reads.
	Author *Author
}

// Author is the public author projection embedded in blog listings.
type Author struct {
	FullName   string
	Username   string
	ProfileImg string
}
