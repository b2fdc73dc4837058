package service

import (
	"time"

	"github.com/google/uuid"

	"tasktracker/internal/domain"
)

// Response DTOs decouple the API surface from the GORM models.

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type TaskListResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AttachmentResponse struct {
	ID            uuid.UUID `json:"id"`
	TaskID        uuid.UUID `json:"task_id"`
	Filename      string    `json:"filename"`
	FileURL       string    `json:"file_url"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	ContentType   string    `json:"content_type"`
	CreatedAt     time.Time `json:"created_at"`
}

type ChecklistItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ChecklistID uuid.UUID `json:"checklist_id"`
	Content     string    `json:"content"`
	IsCompleted bool      `json:"is_completed"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

type ChecklistResponse struct {
	ID        uuid.UUID               `json:"id"`
	TaskID    uuid.UUID               `json:"task_id"`
	Title     string                  `json:"title"`
	Items     []ChecklistItemResponse `json:"items"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

type TaskResponse struct {
	ID          uuid.UUID            `json:"id"`
	UserID      uuid.UUID            `json:"user_id"`
	TaskListID  *uuid.UUID           `json:"task_list_id"`
	Title       string               `json:"title"`
	Description *string              `json:"description"`
	Status      domain.TaskStatus    `json:"status"`
	Priority    domain.TaskPriority  `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
	Tags        []string             `json:"tags"`
	Overdue     bool                 `json:"overdue"`
	Attachments []AttachmentResponse `json:"attachments"`
	Checklists  []ChecklistResponse  `json:"checklists"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func newUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{ID: u.ID, Email: u.Email, Role: string(u.Role)}
}

func newTaskListResponse(l *domain.TaskList) *TaskListResponse {
	return &TaskListResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func newAttachmentResponse(a *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:            a.ID,
		TaskID:        a.TaskID,
		Filename:      a.Filename,
		FileURL:       a.FileURL,
		FileSizeBytes: a.FileSizeBytes,
		ContentType:   a.ContentType,
		CreatedAt:     a.CreatedAt,
	}
}

func newChecklistItemResponse(i *domain.ChecklistItem) ChecklistItemResponse {
	return ChecklistItemResponse{
		ID:          i.ID,
		ChecklistID: i.ChecklistID,
		Content:     i.Content,
		IsCompleted: i.IsCompleted,
		Position:    i.Position,
		CreatedAt:   i.CreatedAt,
	}
}

func newChecklistResponse(c *domain.Checklist) *ChecklistResponse {
	items := make([]ChecklistItemResponse, 0, len(c.Items))
	for i := range c.Items {
		items = append(items, newChecklistItemResponse(&c.Items[i]))
	}
	return &ChecklistResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Title:     c.Title,
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newTaskResponse(t *domain.Task) *TaskResponse {
	attachments := make([]AttachmentResponse, 0, len(t.Attachments))
	for i := range t.Attachments {
		attachments = append(attachments, newAttachmentResponse(&t.Attachments[i]))
	}
	checklists := make([]ChecklistResponse, 0, len(t.Checklists))
	for i := range t.Checklists {
		checklists = append(checklists, *newChecklistResponse(&t.Checklists[i]))
	}
	return &TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		TaskListID:  t.TaskListID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Tags:        append([]string(nil), t.Tags...),
		Overdue:     t.Overdue(),
		Attachments: attachments,
		Checklists:  checklists,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
