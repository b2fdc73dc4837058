package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktracker/internal/domain"
)

// ChecklistRepository defines the data operations for checklists and
// their items.
type ChecklistRepository interface {
	CreateChecklist(checklist *domain.Checklist) error
	FindChecklistByID(id uuid.UUID) (*domain.Checklist, error)
	DeleteChecklist(id uuid.UUID) error

	AddItem(item *domain.ChecklistItem) error
	FindItemByID(id uuid.UUID) (*domain.ChecklistItem, error)
	UpdateItem(item *domain.ChecklistItem) error
	DeleteItem(id uuid.UUID) error
}

type gormChecklistRepository struct {
	db *gorm.DB
}

// NewGormChecklistRepository creates a GORM-backed checklist repository.
func NewGormChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &gormChecklistRepository{db: db}
}

func (r *gormChecklistRepository) CreateChecklist(checklist *domain.Checklist) error {
	return r.db.Create(checklist).Error
}

func (r *gormChecklistRepository) FindChecklistByID(id uuid.UUID) (*domain.Checklist, error) {
	var checklist domain.Checklist
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&checklist, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

func (r *gormChecklistRepository) DeleteChecklist(id uuid.UUID) error {
	result := r.db.Delete(&domain.Checklist{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormChecklistRepository) AddItem(item *domain.ChecklistItem) error {
	return r.db.Create(item).Error
}

func (r *gormChecklistRepository) FindItemByID(id uuid.UUID) (*domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormChecklistRepository) UpdateItem(item *domain.ChecklistItem) error {
	return r.db.Save(item).Error
}

func (r *gormChecklistRepository) DeleteItem(id uuid.UUID) error {
	result := r.db.Delete(&domain.ChecklistItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
