package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktracker/internal/domain"
)

// TaskListRepository defines the data operations for task lists.
type TaskListRepository interface {
	Create(list *domain.TaskList) error
	FindByID(id uuid.UUID) (*domain.TaskList, error)
	ListByUser(userID uuid.UUID) ([]domain.TaskList, error)
	Update(list *domain.TaskList) error
	Delete(id uuid.UUID) error
}

type gormTaskListRepository struct {
	db *gorm.DB
}

// NewGormTaskListRepository creates a GORM-backed task list repository.
func NewGormTaskListRepository(db *gorm.DB) TaskListRepository {
	return &gormTaskListRepository{db: db}
}

func (r *gormTaskListRepository) Create(list *domain.TaskList) error {
	return r.db.Create(list).Error
}

func (r *gormTaskListRepository) FindByID(id uuid.UUID) (*domain.TaskList, error) {
	var list domain.TaskList
	if err := r.db.First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *gormTaskListRepository) ListByUser(userID uuid.UUID) ([]domain.TaskList, error) {
	var lists []domain.TaskList
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *gormTaskListRepository) Update(list *domain.TaskList) error {
	return r.db.Omit("Tasks").Save(list).Error
}

func (r *gormTaskListRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&domain.TaskList{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
