package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktracker/internal/domain"
)

// TaskFilter narrows a user's task listing. Nil fields are ignored; the
// owner scope is applied unconditionally by the repository.
type TaskFilter struct {
	Status     *domain.TaskStatus
	Priority   *domain.TaskPriority
	TaskListID *uuid.UUID
}

// TaskRepository defines the data operations for tasks and their
// attachment records.
type TaskRepository interface {
	Create(task *domain.Task) error
	FindByID(id uuid.UUID) (*domain.Task, error)
	ListByUser(userID uuid.UUID, filter TaskFilter, limit, offset int) ([]domain.Task, error)
	Update(task *domain.Task) error
	Delete(id uuid.UUID) error

	AddAttachment(attachment *domain.Attachment) error
	FindAttachmentByID(id uuid.UUID) (*domain.Attachment, error)
	DeleteAttachment(id uuid.UUID) error

	DueSoon(within time.Duration) ([]domain.Task, error)
}

type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a GORM-backed task repository.
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

// withAggregates preloads attachments and checklists, with checklist
// items in display order (position, then insertion time).
func withAggregates(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Attachments").
		Preload("Checklists").
		Preload("Checklists.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		})
}

func (r *gormTaskRepository) Create(task *domain.Task) error {
	return r.db.Create(task).Error
}

func (r *gormTaskRepository) FindByID(id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := withAggregates(r.db).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) ListByUser(userID uuid.UUID, filter TaskFilter, limit, offset int) ([]domain.Task, error) {
	query := withAggregates(r.db).Where("user_id = ?", userID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.TaskListID != nil {
		query = query.Where("task_list_id = ?", *filter.TaskListID)
	}

	var tasks []domain.Task
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormTaskRepository) Update(task *domain.Task) error {
	// Omit associations so a task update never touches attachment or
	// checklist rows loaded alongside it.
	return r.db.Omit("Attachments", "Checklists").Save(task).Error
}

func (r *gormTaskRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormTaskRepository) AddAttachment(attachment *domain.Attachment) error {
	return r.db.Create(attachment).Error
}

func (r *gormTaskRepository) FindAttachmentByID(id uuid.UUID) (*domain.Attachment, error) {
	var attachment domain.Attachment
	if err := r.db.First(&attachment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *gormTaskRepository) DeleteAttachment(id uuid.UUID) error {
	result := r.db.Delete(&domain.Attachment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DueSoon returns tasks due within the given window that are not done,
// for the reminder job.
func (r *gormTaskRepository) DueSoon(within time.Duration) ([]domain.Task, error) {
	now := time.Now()
	var tasks []domain.Task
	err := r.db.
		Where("due_date IS NOT NULL AND due_date BETWEEN ? AND ?", now, now.Add(within)).
		Where("status <> ?", domain.StatusDone).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
