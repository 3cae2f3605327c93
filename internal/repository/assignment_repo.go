package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tesuto-go-api/internal/models"
)

// AssignmentFilter narrows assignment listings. Empty fields are ignored.
type AssignmentFilter struct {
	TutorID   string
	SubjectID string
	Status    string
}

// AssignmentRepository defines persistence operations for assignments and
// their problems.
type AssignmentRepository interface {
	List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error)
	ProblemCounts(ctx context.Context, assignmentIDs []string) (map[string]int64, error)
	GetByID(ctx context.Context, id string) (models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id string) error
	CountProblems(ctx context.Context, assignmentID string) (int64, error)
	CreateProblems(ctx context.Context, problems []models.Problem) error
	CountProblemsForTutor(ctx context.Context, tutorID string) (int64, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error) {
	query := r.db.WithContext(ctx).Preload("Subject")

	if filter.TutorID != "" {
		query = query.Where("tutor_id = ?", filter.TutorID)
	}
	if filter.SubjectID != "" {
		query = query.Where("subject_id = ?", filter.SubjectID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var assignments []models.Assignment
	if err := query.Order("created_at DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) ProblemCounts(ctx context.Context, assignmentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(assignmentIDs))
	if len(assignmentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		AssignmentID string
		Total        int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Problem{}).
		Select("assignment_id, COUNT(*) AS total").
		Where("assignment_id IN ?", assignmentIDs).
		Group("assignment_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, entry := range rows {
		counts[entry.AssignmentID] = entry.Total
	}

	return counts, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Subject.Topics", orderedTopics).
		Preload("Problems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&assignment, "id = ?", id).Error
	if err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Omit("Subject").Create(assignment).Error
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Omit("Subject", "Problems").Save(assignment).Error
}

// Delete removes the assignment together with its problems in one
// transaction.
func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", id).Delete(&models.Problem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Assignment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *assignmentRepository) CountProblems(ctx context.Context, assignmentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Problem{}).
		Where("assignment_id = ?", assignmentID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *assignmentRepository) CreateProblems(ctx context.Context, problems []models.Problem) error {
	if len(problems) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&problems).Error
}

func (r *assignmentRepository) CountProblemsForTutor(ctx context.Context, tutorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Problem{}).
		Joins("JOIN assignments ON assignments.id = problems.assignment_id").
		Where("assignments.tutor_id = ?", tutorID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
