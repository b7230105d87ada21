// Package seed fills a development database with demo users, posts and comments.
package seed

import (
	"fmt"
	"log"

	"myapp/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
}

type Result struct {
	Users    int
	Posts    int
	Comments int
}

type Seeder struct {
	db       *gorm.DB
	faker    *gofakeit.Faker
	password string
}

// NewSeeder makes generated content reproducible for a given seed; zero picks a random one.
func NewSeeder(db *gorm.DB, seed int64) *Seeder {
	return &Seeder{db: db, faker: gofakeit.New(seed), password: DemoPassword}
}

// ClearAll removes comments, posts and users, children first.
func (s *Seeder) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Comment{}, &models.Post{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clearing %T: %w", model, err)
			}
		}
		return nil
	})
}

func (s *Seeder) Run(opts Options) (*Result, error) {
	result := &Result{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := make([]*models.User, 0, opts.Users)
		for i := 0; i < opts.Users; i++ {
			user, err := s.buildUser(i)
			if err != nil {
				return err
			}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("creating user %s: %w", user.Username, err)
			}
			users = append(users, user)
		}
		result.Users = len(users)

		for _, author := range users {
			for p := 0; p < opts.PostsPerUser; p++ {
				post := &models.Post{
					Title:     s.faker.Sentence(5),
					Content:   s.faker.Paragraph(1, 3, 5, "\n"),
					AuthorID:  author.ID,
					Published: s.faker.Bool(),
				}
				if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
					return fmt.Errorf("creating post: %w", err)
				}
				result.Posts++

				for k := 0; k < opts.CommentsPerPost; k++ {
					commenter := users[s.faker.Number(0, len(users)-1)]
					comment := &models.Comment{
						Content:  s.faker.Sentence(8),
						PostID:   post.ID,
						AuthorID: commenter.ID,
					}
					if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
						return fmt.Errorf("creating comment: %w", err)
					}
					result.Comments++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Seeded %d users, %d posts, %d comments", result.Users, result.Posts, result.Comments)
	return result, nil
}

func (s *Seeder) buildUser(i int) (*models.User, error) {
	user := &models.User{
		// The index suffix keeps usernames unique whatever the faker returns.
		Username:  fmt.Sprintf("%s%d", s.faker.Username(), i),
		Email:     s.faker.Email(),
		Password:  s.password,
		FirstName: s.faker.FirstName(),
		LastName:  s.faker.LastName(),
	}
	if err := user.HashPassword(); err != nil {
		return nil, fmt.Errorf("hashing password for %s: %w", user.Username, err)
	}
	return user, nil
}
