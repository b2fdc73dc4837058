package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

// CreateChecklistRequest holds the data needed to create a checklist.
type CreateChecklistRequest struct {
	Title string `json:"title"`
}

// CreateChecklistItemRequest holds the data needed to add an item.
// Position is caller-supplied; duplicates are allowed and resolved by
// insertion time at display.
type CreateChecklistItemRequest struct {
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// UpdateChecklistItemRequest holds a partial item update.
type UpdateChecklistItemRequest struct {
	Content     *string `json:"content"`
	IsCompleted *bool   `json:"is_completed"`
	Position    *int    `json:"position"`
}

// ChecklistService contains the business logic for checklists and their
// items. Ownership of any item walks item -> checklist -> task -> user.
type ChecklistService interface {
	CreateChecklist(ctx context.Context, taskID, userID uuid.UUID, req CreateChecklistRequest) (*ChecklistResponse, error)
	GetChecklist(ctx context.Context, checklistID, userID uuid.UUID) (*ChecklistResponse, error)
	DeleteChecklist(ctx context.Context, checklistID, userID uuid.UUID) error

	AddItem(ctx context.Context, checklistID, userID uuid.UUID, req CreateChecklistItemRequest) (*ChecklistItemResponse, error)
	UpdateItem(ctx context.Context, itemID, userID uuid.UUID, req UpdateChecklistItemRequest) (*ChecklistItemResponse, error)
	DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error
}

type checklistService struct {
	checklists repository.ChecklistRepository
	tasks      repository.TaskRepository
}

// NewChecklistService creates the checklist service.
func NewChecklistService(checklists repository.ChecklistRepository, tasks repository.TaskRepository) ChecklistService {
	return &checklistService{checklists: checklists, tasks: tasks}
}

// authorizeChecklist loads a checklist and walks up to its owning task
// to classify the caller's access.
func (s *checklistService) authorizeChecklist(checklistID, userID uuid.UUID) (*domain.Checklist, Access, error) {
	checklist, err := s.checklists.FindChecklistByID(checklistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, AccessNotFound, nil
		}
		return nil, AccessNotFound, fmt.Errorf("load checklist: %w", err)
	}
	_, access, err := authorizeTask(s.tasks, checklist.TaskID, userID)
	if err != nil {
		return nil, access, err
	}
	return checklist, access, nil
}

// authorizeItem loads an item and walks up through its checklist to the
// owning task.
func (s *checklistService) authorizeItem(itemID, userID uuid.UUID) (*domain.ChecklistItem, Access, error) {
	item, err := s.checklists.FindItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, AccessNotFound, nil
		}
		return nil, AccessNotFound, fmt.Errorf("load checklist item: %w", err)
	}
	_, access, err := s.authorizeChecklist(item.ChecklistID, userID)
	if err != nil {
		return nil, access, err
	}
	return item, access, nil
}

func (s *checklistService) CreateChecklist(ctx context.Context, taskID, userID uuid.UUID, req CreateChecklistRequest) (*ChecklistResponse, error) {
	_, access, err := authorizeTask(s.tasks, taskID, userID)
	if err != nil {
		return nil, err
	}
	if err := access.Err(); err != nil {
		return nil, err
	}

	checklist := &domain.Checklist{
		TaskID: taskID,
		Title:  req.Title,
	}
	if err := s.checklists.CreateChecklist(checklist); err != nil {
		return nil, fmt.Errorf("create checklist: %w", err)
	}
	return newChecklistResponse(checklist), nil
}

func (s *checklistService) GetChecklist(ctx context.Context, checklistID, userID uuid.UUID) (*ChecklistResponse, error) {
	checklist, access, err := s.authorizeChecklist(checklistID, userID)
	if err != nil {
		return nil, err
	}
	if err := access.Err(); err != nil {
		return nil, err
	}
	return newChecklistResponse(checklist), nil
}

func (s *checklistService) DeleteChecklist(ctx context.Context, checklistID, userID uuid.UUID) error {
	_, access, err := s.authorizeChecklist(checklistID, userID)
	if err != nil {
		return err
	}
	if err := access.Err(); err != nil {
		return err
	}
	if err := s.checklists.DeleteChecklist(checklistID); err != nil {
		return fmt.Errorf("delete checklist: %w", err)
	}
	return nil
}

func (s *checklistService) AddItem(ctx context.Context, checklistID, userID uuid.UUID, req CreateChecklistItemRequest) (*ChecklistItemResponse, error) {
	_, access, err := s.authorizeChecklist(checklistID, userID)
	if err != nil {
		return nil, err
	}
	if err := access.Err(); err != nil {
		return nil, err
	}

	item := &domain.ChecklistItem{
		ChecklistID: checklistID,
		Content:     req.Content,
		Position:    req.Position,
	}
	if err := s.checklists.AddItem(item); err != nil {
		return nil, fmt.Errorf("add checklist item: %w", err)
	}
	resp := newChecklistItemResponse(item)
	return &resp, nil
}

func (s *checklistService) UpdateItem(ctx context.Context, itemID, userID uuid.UUID, req UpdateChecklistItemRequest) (*ChecklistItemResponse, error) {
	item, access, err := s.authorizeItem(itemID, userID)
	if err != nil {
		return nil, err
	}
	if err := access.Err(); err != nil {
		return nil, err
	}

	if req.Content != nil {
		item.Content = *req.Content
	}
	if req.IsCompleted != nil {
		item.IsCompleted = *req.IsCompleted
	}
	if req.Position != nil {
		item.Position = *req.Position
	}

	if err := s.checklists.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("update checklist item: %w", err)
	}
	resp := newChecklistItemResponse(item)
	return &resp, nil
}

func (s *checklistService) DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error {
	_, access, err := s.authorizeItem(itemID, userID)
	if err != nil {
		return err
	}
	if err := access.Err(); err != nil {
		return err
	}
	if err := s.checklists.DeleteItem(itemID); err != nil {
		return fmt.Errorf("delete checklist item: %w", err)
	}
	return nil
}
