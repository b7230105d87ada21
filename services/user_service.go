package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apierrors "myapp/errors"
	"myapp/models"
	"myapp/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apierrors.Validation("username", "This field may not be blank.")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if existing > 0 {
		return nil, apierrors.Validation("username", "A user with that username already exists.")
	}

	user := &models.User{
		Username:  username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context, page utils.Page) (*Paged[models.User], error) {
	query, count, resolved, err := paginate(ctx, s.db, &models.User{}, allRows, page)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := query.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return &Paged[models.User]{Items: users, Count: count, Page: resolved}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Authenticate returns the user only when the password matches.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	if !user.CheckPassword(password) {
		return nil, apierrors.ErrNotFound
	}
	return &user, nil
}

// notFound maps gorm's missing-row error onto the API taxonomy.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierrors.ErrNotFound
	}
	return err
}
