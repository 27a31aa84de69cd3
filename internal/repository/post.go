package repository

import (
	"context"
	"errors"
	"strings"

	"pulseboard/internal/cache"
	"pulseboard/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. Reads carry
// the aggregated vote count; mutation never checks ownership here, the
// service layer gates it.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, search string, limit, skip int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// withVoteCounts joins votes onto posts and counts per post. The join must
// be an outer join so posts with zero votes still report votes = 0.
func (r *postRepository) withVoteCounts(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).
		Select("posts.*, COUNT(votes.post_id) AS votes").
		Joins("LEFT JOIN votes ON votes.post_id = posts.id").
		Group("posts.id")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.withVoteCounts(r.db.WithContext(ctx)).
			Preload("Owner").
			Where("posts.id = ?", id).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, search string, limit, skip int) ([]*models.Post, error) {
	var posts []*models.Post

	query := r.withVoteCounts(r.db.WithContext(ctx)).Preload("Owner")
	if search != "" {
		// LOWER/LIKE instead of ILIKE so the same query runs on the
		// SQLite test database.
		query = query.Where("LOWER(posts.title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	err := query.
		Order("posts.id").
		Limit(limit).
		Offset(skip).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	// Omit the Owner association so saving a loaded post never writes
	// back to the users table.
	if err := r.db.WithContext(ctx).Omit("Owner").Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
