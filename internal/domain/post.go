package domain

import (
	"slices"
	"time"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
)

type Comment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type Post struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"author_id"`
	AuthorName string     `json:"author_name"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Status     PostStatus `json:"status"`
	Likes      []string   `json:"likes"` // actor ids, each at most once
	Comments   []Comment  `json:"comments"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (p *Post) LikedBy(actorID string) bool {
	return slices.Contains(p.Likes, actorID)
}

func (p *Post) Clone() *Post {
	c := *p
	c.Likes = append([]string{}, p.Likes...)
	c.Comments = append([]Comment{}, p.Comments...)
	return &c
}

type BlogPost struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	ReadTime   string    `json:"read_time"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}
