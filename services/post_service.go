package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	apierrors "myapp/errors"
	"myapp/models"
	"myapp/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxTitleLength = 200

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func (s *PostService) GetPosts(ctx context.Context, page utils.Page) (*Paged[models.PostListResponse], error) {
	query, count, resolved, err := paginate(ctx, s.db, &models.Post{}, allRows, page)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := query.Scopes(newestFirst).Preload("Author").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	counts, err := s.commentCounts(ctx, posts)
	if err != nil {
		return nil, err
	}

	items := make([]models.PostListResponse, 0, len(posts))
	for i := range posts {
		items = append(items, posts[i].ListResponse(counts[posts[i].ID]))
	}
	return &Paged[models.PostListResponse]{Items: items, Count: count, Page: resolved}, nil
}

func (s *PostService) commentCounts(ctx context.Context, posts []models.Post) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(posts))
	if len(posts) == 0 {
		return counts, nil
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	var rows []struct {
		PostID uint
		Total  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting comments: %w", err)
	}

	for _, r := range rows {
		counts[r.PostID] = r.Total
	}
	return counts, nil
}

// GetPostByID loads a post with its author and comments, newest comment first.
func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", newestFirst).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (s *PostService) CreatePost(ctx context.Context, callerID uint, req *models.PostRequest) (*models.Post, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := validatePost(req, false); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    strings.TrimSpace(*req.Title),
		Content:  *req.Content,
		AuthorID: callerID,
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	return s.GetPostByID(ctx, post.ID)
}

// UpdatePost applies a PUT (partial=false) or PATCH (partial=true) body.
func (s *PostService) UpdatePost(ctx context.Context, callerID, id uint, req *models.PostRequest, partial bool) (*models.Post, error) {
	post, err := s.ownedPost(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := validatePost(req, partial); err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	// Save always bumps updated_at, even when no field changed.
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return nil, fmt.Errorf("updating post %d: %w", id, err)
	}

	return s.GetPostByID(ctx, post.ID)
}

// DeletePost removes the post together with all of its comments.
func (s *PostService) DeletePost(ctx context.Context, callerID, id uint) error {
	post, err := s.ownedPost(ctx, callerID, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("deleting comments of post %d: %w", post.ID, err)
		}
		if err := tx.Delete(&models.Post{}, post.ID).Error; err != nil {
			return fmt.Errorf("deleting post %d: %w", post.ID, err)
		}
		return nil
	})
}

func (s *PostService) PublishPost(ctx context.Context, callerID, id uint) (bool, error) {
	return s.setPublished(ctx, callerID, id, true)
}

func (s *PostService) UnpublishPost(ctx context.Context, callerID, id uint) (bool, error) {
	return s.setPublished(ctx, callerID, id, false)
}

func (s *PostService) setPublished(ctx context.Context, callerID, id uint, published bool) (bool, error) {
	post, err := s.ownedPost(ctx, callerID, id)
	if err != nil {
		return false, err
	}

	post.Published = published
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return false, fmt.Errorf("setting published on post %d: %w", id, err)
	}
	return post.Published, nil
}

// ownedPost checks identity, existence and ownership in that order.
func (s *PostService) ownedPost(ctx context.Context, callerID, id uint) (*models.Post, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}

	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, notFound(err)
	}

	if err := Authorize(callerID, post.AuthorID, false); err != nil {
		return nil, err
	}
	return &post, nil
}

func validatePost(req *models.PostRequest, partial bool) error {
	errs := apierrors.FieldErrors{}

	switch {
	case req.Title == nil:
		if !partial {
			errs.Add("title", "This field is required.")
		}
	case strings.TrimSpace(*req.Title) == "":
		errs.Add("title", "This field may not be blank.")
	case utf8.RuneCountInString(strings.TrimSpace(*req.Title)) > maxTitleLength:
		errs.Add("title", fmt.Sprintf("Ensure this field has no more than %d characters.", maxTitleLength))
	}

	requireText(errs, "content", req.Content, partial)

	return errs.Err()
}

func requireText(errs apierrors.FieldErrors, field string, value *string, partial bool) {
	switch {
	case value == nil:
		if !partial {
			errs.Add(field, "This field is required.")
		}
	case strings.TrimSpace(*value) == "":
		errs.Add(field, "This field may not be blank.")
	}
}
