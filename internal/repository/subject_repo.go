package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tesuto-go-api/internal/models"
)

// SubjectFilter narrows subject listings.
type SubjectFilter struct {
	TutorID string
}

// SubjectRepository defines persistence operations for subjects and their
// topics.
type SubjectRepository interface {
	List(ctx context.Context, filter SubjectFilter) ([]models.Subject, error)
	AssignmentCounts(ctx context.Context, subjectIDs []string) (map[string]int64, error)
	GetByID(ctx context.Context, id string) (models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
	CountTopics(ctx context.Context, subjectID string) (int64, error)
	CreateTopic(ctx context.Context, topic *models.Topic) error
	DeleteTopic(ctx context.Context, subjectID, topicID string) error
	CountForTutor(ctx context.Context, tutorID string) (int64, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository instantiates a GORM-backed repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func orderedTopics(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func (r *subjectRepository) List(ctx context.Context, filter SubjectFilter) ([]models.Subject, error) {
	query := r.db.WithContext(ctx).Preload("Topics", orderedTopics)

	if filter.TutorID != "" {
		query = query.Where("tutor_id = ?", filter.TutorID)
	}

	var subjects []models.Subject
	if err := query.Order("created_at DESC").Find(&subjects).Error; err != nil {
		return nil, err
	}

	return subjects, nil
}

func (r *subjectRepository) AssignmentCounts(ctx context.Context, subjectIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return counts, nil
	}

	type row struct {
		SubjectID string
		Total     int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Select("subject_id, COUNT(*) AS total").
		Where("subject_id IN ?", subjectIDs).
		Group("subject_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, entry := range rows {
		counts[entry.SubjectID] = entry.Total
	}

	return counts, nil
}

func (r *subjectRepository) GetByID(ctx context.Context, id string) (models.Subject, error) {
	var subject models.Subject
	err := r.db.WithContext(ctx).
		Preload("Topics", orderedTopics).
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&subject, "id = ?", id).Error
	if err != nil {
		return models.Subject{}, err
	}

	return subject, nil
}

func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Omit("Topics", "Assignments").Save(subject).Error
}

// Delete removes the subject together with its topics, assignments and the
// assignments' problems in one transaction.
func (r *subjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subject models.Subject
		if err := tx.Select("id").First(&subject, "id = ?", id).Error; err != nil {
			return err
		}

		err := tx.Where("assignment_id IN (?)",
			tx.Model(&models.Assignment{}).Select("id").Where("subject_id = ?", id),
		).Delete(&models.Problem{}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("subject_id = ?", id).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("subject_id = ?", id).Delete(&models.Topic{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Subject{}, "id = ?", id).Error
	})
}

func (r *subjectRepository) CountTopics(ctx context.Context, subjectID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Topic{}).
		Where("subject_id = ?", subjectID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *subjectRepository) CreateTopic(ctx context.Context, topic *models.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

// DeleteTopic removes the topic and nulls the reference on any problem that
// pointed at it.
func (r *subjectRepository) DeleteTopic(ctx context.Context, subjectID, topicID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Problem{}).
			Where("topic_id = ?", topicID).
			Update("topic_id", nil).Error
		if err != nil {
			return err
		}

		result := tx.Where("id = ? AND subject_id = ?", topicID, subjectID).Delete(&models.Topic{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *subjectRepository) CountForTutor(ctx context.Context, tutorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("tutor_id = ?", tutorID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
