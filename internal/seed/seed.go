// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pulseboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the plaintext password shared by all seeded users.
const DemoPassword = "password123"

// Seeder populates the database with generated users, posts and votes.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Seeder{
		db: db,
		r:  rand.New(rand.NewSource(seed)),
	}
}

// ClearAll removes all seeded data. Votes go first, then posts, then users,
// so foreign keys never block the wipe.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{&models.Vote{}, &models.Post{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// SeedUsers creates n users with generated emails. Every user shares
// DemoPassword so seeded accounts are usable for manual testing.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, &models.User{
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(digest),
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("Created %d users", len(users))
	return users, nil
}

// SeedPosts creates n posts spread across the given users with a realistic
// created_at spread over the last 90 days.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to own posts")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.r.Intn(len(users))]
		post := &models.Post{
			Title:     gofakeit.Sentence(5),
			Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
			Published: s.r.Intn(10) > 0,
			UserID:    owner.ID,
		}
		daysBack := s.r.Intn(90)
		hoursBack := s.r.Intn(24)
		post.CreatedAt = time.Now().
			Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
		posts = append(posts, post)
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return nil, fmt.Errorf("seeding posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))
	return posts, nil
}

// SeedVotes gives each post votes from a random subset of users. The
// composite key keeps each (user, post) pair unique.
func (s *Seeder) SeedVotes(users []*models.User, posts []*models.Post) (int, error) {
	var votes []*models.Vote
	for _, post := range posts {
		voters := s.r.Perm(len(users))
		count := s.r.Intn(len(users) + 1)
		for _, idx := range voters[:count] {
			votes = append(votes, &models.Vote{
				UserID: users[idx].ID,
				PostID: post.ID,
			})
		}
	}
	if len(votes) == 0 {
		return 0, nil
	}
	if err := s.db.CreateInBatches(&votes, 500).Error; err != nil {
		return 0, fmt.Errorf("seeding votes: %w", err)
	}
	log.Printf("Created %d votes", len(votes))
	return len(votes), nil
}
