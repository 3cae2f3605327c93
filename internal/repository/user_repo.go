package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tesuto-go-api/internal/models"
)

// UserWithCounts pairs a user row with the number of subjects and
// assignments it owns.
type UserWithCounts struct {
	models.User
	SubjectCount    int64
	AssignmentCount int64
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]UserWithCounts, error)
	GetByID(ctx context.Context, id string) (UserWithCounts, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository instantiates a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

const userCountSelect = "users.*, " +
	"(SELECT COUNT(*) FROM subjects WHERE subjects.tutor_id = users.id) AS subject_count, " +
	"(SELECT COUNT(*) FROM assignments WHERE assignments.tutor_id = users.id) AS assignment_count"

func (r *userRepository) List(ctx context.Context) ([]UserWithCounts, error) {
	var users []UserWithCounts
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select(userCountSelect).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (UserWithCounts, error) {
	var user UserWithCounts
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select(userCountSelect).
		Where("users.id = ?", id).
		First(&user).Error
	if err != nil {
		return UserWithCounts{}, err
	}

	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}
