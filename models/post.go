package models

import (
	"time"
)

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    User      `json:"author" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Published bool      `json:"published" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Comments  []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// PostRequest carries both PUT and PATCH bodies; nil means "not provided".
// Any client-supplied author is dropped during binding.
type PostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

type PostListResponse struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	Author        UserResponse `json:"author"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Published     bool         `json:"published"`
	CommentsCount int64        `json:"comments_count"`
}

type PostResponse struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	Author        UserResponse      `json:"author"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Published     bool              `json:"published"`
	Comments      []CommentResponse `json:"comments"`
	CommentsCount int64             `json:"comments_count"`
}

func (p *Post) ListResponse(commentsCount int64) PostListResponse {
	return PostListResponse{
		ID:            p.ID,
		Title:         p.Title,
		Author:        p.Author.Response(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Published:     p.Published,
		CommentsCount: commentsCount,
	}
}

func (p *Post) Response() PostResponse {
	comments := make([]CommentResponse, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, p.Comments[i].Response())
	}
	return PostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Author:        p.Author.Response(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Published:     p.Published,
		Comments:      comments,
		CommentsCount: int64(len(comments)),
	}
}
