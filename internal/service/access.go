package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

// Access is the result of an ownership check.
type Access int

const (
	AccessGranted Access = iota
	AccessNotFound
	AccessForbidden
)

// Err collapses the access decision into the merged not-found error.
// Every surface except account deletion uses this, so a caller cannot
// tell a foreign resource from a missing one.
func (a Access) Err() error {
	if a == AccessGranted {
		return nil
	}
	return ErrNotFound
}

// authorizeTask loads a task and classifies the caller's access to it.
// Nested resources (checklists, items, attachments) walk up to the
// owning task and go through this same check.
func authorizeTask(repo repository.TaskRepository, taskID, callerID uuid.UUID) (*domain.Task, Access, error) {
	task, err := repo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, AccessNotFound, nil
		}
		return nil, AccessNotFound, fmt.Errorf("load task: %w", err)
	}
	if task.UserID != callerID {
		return nil, AccessForbidden, nil
	}
	return task, AccessGranted, nil
}
