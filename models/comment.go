package models

import "time"

type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	PostID    uint      `json:"post" gorm:"not null;index"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    User      `json:"author" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

type CommentRequest struct {
	Content *string `json:"content"`
	Post    *uint   `json:"post"`
}

type CommentResponse struct {
	ID        uint         `json:"id"`
	Content   string       `json:"content"`
	Post      uint         `json:"post"`
	Author    UserResponse `json:"author"`
	CreatedAt time.Time    `json:"created_at"`
}

func (c *Comment) Response() CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		Post:      c.PostID,
		Author:    c.Author.Response(),
		CreatedAt: c.CreatedAt,
	}
}
