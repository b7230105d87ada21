package services

import (
	"context"
	"errors"
	"fmt"

	apierrors "myapp/errors"
	"myapp/models"
	"myapp/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// GetComments lists comments newest first, optionally restricted to one post.
func (s *CommentService) GetComments(ctx context.Context, page utils.Page, postID *uint) (*Paged[models.Comment], error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if postID != nil {
			return db.Where("post_id = ?", *postID)
		}
		return db
	}

	query, count, resolved, err := paginate(ctx, s.db, &models.Comment{}, scope, page)
	if err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := query.Scopes(newestFirst).Preload("Author").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return &Paged[models.Comment]{Items: comments, Count: count, Page: resolved}, nil
}

func (s *CommentService) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

func (s *CommentService) CreateComment(ctx context.Context, callerID uint, req *models.CommentRequest) (*models.Comment, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := s.validateComment(ctx, req, false); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  *req.Content,
		PostID:   *req.Post,
		AuthorID: callerID,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	return s.GetCommentByID(ctx, comment.ID)
}

func (s *CommentService) UpdateComment(ctx context.Context, callerID, id uint, req *models.CommentRequest, partial bool) (*models.Comment, error) {
	comment, err := s.ownedComment(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateComment(ctx, req, partial); err != nil {
		return nil, err
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}
	if req.Post != nil {
		comment.PostID = *req.Post
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error; err != nil {
		return nil, fmt.Errorf("updating comment %d: %w", id, err)
	}

	return s.GetCommentByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, callerID, id uint) error {
	comment, err := s.ownedComment(ctx, callerID, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID).Error; err != nil {
		return fmt.Errorf("deleting comment %d: %w", id, err)
	}
	return nil
}

func (s *CommentService) ownedComment(ctx context.Context, callerID, id uint) (*models.Comment, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, notFound(err)
	}

	if err := Authorize(callerID, comment.AuthorID, false); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) validateComment(ctx context.Context, req *models.CommentRequest, partial bool) error {
	errs := apierrors.FieldErrors{}

	requireText(errs, "content", req.Content, partial)

	switch {
	case req.Post == nil:
		if !partial {
			errs.Add("post", "This field is required.")
		}
	default:
		var post models.Post
		err := s.db.WithContext(ctx).Select("id").First(&post, *req.Post).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			errs.Add("post", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *req.Post))
		case err != nil:
			return fmt.Errorf("looking up post %d: %w", *req.Post, err)
		}
	}

	return errs.Err()
}
