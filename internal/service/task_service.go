package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
	"tasktracker/internal/storage"
)

// CreateTaskRequest holds the data needed to create a task.
type CreateTaskRequest struct {
	Title       string               `json:"title"`
	Description *string              `json:"description"`
	Priority    *domain.TaskPriority `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
	Tags        []string             `json:"tags"`
	TaskListID  *uuid.UUID           `json:"task_list_id"`
}

// UpdateTaskRequest holds a partial task update. Pointer fields
// distinguish omitted from zero-valued.
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *domain.TaskStatus   `json:"status"`
	Priority    *domain.TaskPriority `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
	Tags        []string             `json:"tags"`
	TaskListID  *uuid.UUID           `json:"task_list_id"`
}

// TaskService contains the business logic for tasks and attachments.
type TaskService interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter repository.TaskFilter, limit, offset int) ([]TaskResponse, error)
	Get(ctx context.Context, taskID, userID uuid.UUID) (*TaskResponse, error)
	Update(ctx context.Context, taskID, userID uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error)
	Delete(ctx context.Context, taskID, userID uuid.UUID) error

	AddAttachment(ctx context.Context, taskID, userID uuid.UUID, content []byte, filename, contentType string) (*TaskResponse, error)
	RemoveAttachment(ctx context.Context, attachmentID, userID uuid.UUID) error
}

type taskService struct {
	tasks   repository.TaskRepository
	lists   repository.TaskListRepository
	storage storage.ObjectStorage
	log     *logrus.Logger
}

// NewTaskService creates the task service.
func NewTaskService(tasks repository.TaskRepository, lists repository.TaskListRepository, store storage.ObjectStorage, log *logrus.Logger) TaskService {
	return &taskService{
		tasks:   tasks,
		lists:   lists,
		storage: store,
		log:     log,
	}
}

// validateTaskList checks that the referenced task list exists and
// belongs to the caller. A foreign list reads as invalid, not as
// forbidden.
func (s *taskService) validateTaskList(listID, userID uuid.UUID) error {
	list, err := s.lists.FindByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidTaskList
		}
		return fmt.Errorf("load task list: %w", err)
	}
	if list.UserID != userID {
		return ErrInvalidTaskList
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, userID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	if req.TaskListID != nil {
		if err := s.validateTaskList(*req.TaskListID, userID); err != nil {
			return nil, err
		}
	}

	task := &domain.Task{
		UserID:      userID,
		TaskListID:  req.TaskListID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.StatusTodo,
		Priority:    domain.PriorityMedium,
		DueDate:     req.DueDate,
		Tags:        pq.StringArray(req.Tags),
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	if err := s.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return newTaskResponse(task), nil
}

func (s *taskService) List(ctx context.Context, userID uuid.UUID, filter repository.TaskFilter, limit, offset int) ([]TaskResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	tasks, err := s.tasks.ListByUser(userID, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *newTaskResponse(&tasks[i]))
	}
	return responses, nil
}

func (s *taskService) Get(ctx context.Context, taskID, userID uuid.UUID) (*TaskResponse, error) {
	task, access, err := authorizeTask(s.tasks, taskID, userID)
	if err != nil {
		return nil, err
	}
	if err := access.Err(); err != nil {
		return nil, err
	}
	return newTaskResponse(task), nil
}

func (s *taskService) Update(ctx context.Context, taskID, userID uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	task, access, err := authorizeTask(s.tasks, taskID, userID)
	if err != nil {
		return nil, err
	}
	if err := access.Err(); err != nil {
		return nil, err
	}

	if req.TaskListID != nil {
		if err := s.validateTaskList(*req.TaskListID, userID); err != nil {
			return nil, err
		}
		task.TaskListID = req.TaskListID
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Tags != nil {
		task.Tags = pq.StringArray(req.Tags)
	}

	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return newTaskResponse(task), nil
}

// Delete removes a task. Attachment objects are deleted from storage
// first; a storage failure aborts the whole operation so no record ever
// points at a missing object without us knowing.
func (s *taskService) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	task, access, err := authorizeTask(s.tasks, taskID, userID)
	if err != nil {
		return err
	}
	if err := access.Err(); err != nil {
		return err
	}

	for i := range task.Attachments {
		if err := s.storage.Delete(ctx, task.Attachments[i].FileURL); err != nil {
			return fmt.Errorf("delete attachment object: %w", err)
		}
	}

	if err := s.tasks.Delete(taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *taskService) AddAttachment(ctx context.Context, taskID, userID uuid.UUID, content []byte, filename, contentType string) (*TaskResponse, error) {
	_, access, err := authorizeTask(s.tasks, taskID, userID)
	if err != nil {
		return nil, err
	}
	if err := access.Err(); err != nil {
		return nil, err
	}

	fileURL, err := s.storage.Upload(ctx, content, filename, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	attachment := &domain.Attachment{
		TaskID:        taskID,
		Filename:      filename,
		FileURL:       fileURL,
		FileSizeBytes: int64(len(content)),
		ContentType:   contentType,
	}
	if err := s.tasks.AddAttachment(attachment); err != nil {
		return nil, fmt.Errorf("persist attachment: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"task_id":  taskID,
		"filename": filename,
		"url":      fileURL,
	}).Info("attachment uploaded")

	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	return newTaskResponse(task), nil
}

// RemoveAttachment deletes the object from storage before removing the
// record. If the storage delete fails the record stays, so the URL it
// references is never orphaned.
func (s *taskService) RemoveAttachment(ctx context.Context, attachmentID, userID uuid.UUID) error {
	attachment, err := s.tasks.FindAttachmentByID(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load attachment: %w", err)
	}

	_, access, err := authorizeTask(s.tasks, attachment.TaskID, userID)
	if err != nil {
		return err
	}
	if err := access.Err(); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, attachment.FileURL); err != nil {
		return fmt.Errorf("delete attachment object: %w", err)
	}

	if err := s.tasks.DeleteAttachment(attachmentID); err != nil {
		return fmt.Errorf("delete attachment record: %w", err)
	}
	return nil
}
