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

// CreateTaskListRequest holds the data needed to create a task list.
type CreateTaskListRequest struct {
	Name string `json:"name"`
}

// UpdateTaskListRequest holds a partial task list update.
type UpdateTaskListRequest struct {
	Name *string `json:"name"`
}

// TaskListService contains the business logic for task lists.
type TaskListService interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateTaskListRequest) (*TaskListResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]TaskListResponse, error)
	Get(ctx context.Context, listID, userID uuid.UUID) (*TaskListResponse, error)
	Update(ctx context.Context, listID, userID uuid.UUID, req UpdateTaskListRequest) (*TaskListResponse, error)
	Delete(ctx context.Context, listID, userID uuid.UUID) error
}

type taskListService struct {
	lists repository.TaskListRepository
}

// NewTaskListService creates the task list service.
func NewTaskListService(lists repository.TaskListRepository) TaskListService {
	return &taskListService{lists: lists}
}

// authorize loads a list and classifies the caller's access to it.
func (s *taskListService) authorize(listID, userID uuid.UUID) (*domain.TaskList, Access, error) {
	list, err := s.lists.FindByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, AccessNotFound, nil
		}
		return nil, AccessNotFound, fmt.Errorf("load task list: %w", err)
	}
	if list.UserID != userID {
		return nil, AccessForbidden, nil
	}
	return list, AccessGranted, nil
}

func (s *taskListService) Create(ctx context.Context, userID uuid.UUID, req CreateTaskListRequest) (*TaskListResponse, error) {
	list := &domain.TaskList{
		UserID: userID,
		Name:   req.Name,
	}
	if err := s.lists.Create(list); err != nil {
		return nil, fmt.Errorf("create task list: %w", err)
	}
	return newTaskListResponse(list), nil
}

func (s *taskListService) List(ctx context.Context, userID uuid.UUID) ([]TaskListResponse, error) {
	lists, err := s.lists.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	responses := make([]TaskListResponse, 0, len(lists))
	for i := range lists {
		responses = append(responses, *newTaskListResponse(&lists[i]))
	}
	return responses, nil
}

func (s *taskListService) Get(ctx context.Context, listID, userID uuid.UUID) (*TaskListResponse, error) {
	list, access, err := s.authorize(listID, userID)
	if err != nil {
		return nil, err
	}
	if err := access.Err(); err != nil {
		return nil, err
	}
	return newTaskListResponse(list), nil
}

func (s *taskListService) Update(ctx context.Context, listID, userID uuid.UUID, req UpdateTaskListRequest) (*TaskListResponse, error) {
	list, access, err := s.authorize(listID, userID)
	if err != nil {
		return nil, err
	}
	if err := access.Err(); err != nil {
		return nil, err
	}

	if req.Name != nil {
		list.Name = *req.Name
	}

	if err := s.lists.Update(list); err != nil {
		return nil, fmt.Errorf("update task list: %w", err)
	}
	return newTaskListResponse(list), nil
}

func (s *taskListService) Delete(ctx context.Context, listID, userID uuid.UUID) error {
	_, access, err := s.authorize(listID, userID)
	if err != nil {
		return err
	}
	if err := access.Err(); err != nil {
		return err
	}
	if err := s.lists.Delete(listID); err != nil {
		return fmt.Errorf("delete task list: %w", err)
	}
	return nil
}
