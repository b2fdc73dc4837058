package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// clock hands out strictly increasing timestamps so created_at ordering
// is deterministic in tests.
type clock struct {
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) next() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
	clk   *clock
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User), clk: newClock()}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.clk.next()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByVerificationToken(token string) (*domain.User, error) {
	for _, user := range r.users {
		if user.VerificationToken != nil && *user.VerificationToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeTaskRepo struct {
	tasks       map[uuid.UUID]*domain.Task
	attachments map[uuid.UUID]*domain.Attachment
	clk         *clock
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:       make(map[uuid.UUID]*domain.Task),
		attachments: make(map[uuid.UUID]*domain.Attachment),
		clk:         newClock(),
	}
}

func (r *fakeTaskRepo) Create(task *domain.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = r.clk.next()
	task.UpdatedAt = task.CreatedAt
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) FindByID(id uuid.UUID) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *task
	copied.Attachments = nil
	for _, a := range r.attachments {
		if a.TaskID == id {
			copied.Attachments = append(copied.Attachments, *a)
		}
	}
	return &copied, nil
}

func (r *fakeTaskRepo) ListByUser(userID uuid.UUID, filter repository.TaskFilter, limit, offset int) ([]domain.Task, error) {
	var tasks []domain.Task
	for _, task := range r.tasks {
		if task.UserID != userID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.TaskListID != nil && (task.TaskListID == nil || *task.TaskListID != *filter.TaskListID) {
			continue
		}
		tasks = append(tasks, *task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	if offset >= len(tasks) {
		return nil, nil
	}
	tasks = tasks[offset:]
	if limit < len(tasks) {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (r *fakeTaskRepo) Update(task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	task.UpdatedAt = r.clk.next()
	copied := *task
	copied.Attachments = nil
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Delete(id uuid.UUID) error {
	if _, ok := r.tasks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.tasks, id)
	for attID, a := range r.attachments {
		if a.TaskID == id {
			delete(r.attachments, attID)
		}
	}
	return nil
}

func (r *fakeTaskRepo) AddAttachment(attachment *domain.Attachment) error {
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}
	attachment.CreatedAt = r.clk.next()
	copied := *attachment
	r.attachments[attachment.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) FindAttachmentByID(id uuid.UUID) (*domain.Attachment, error) {
	attachment, ok := r.attachments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *attachment
	return &copied, nil
}

func (r *fakeTaskRepo) DeleteAttachment(id uuid.UUID) error {
	if _, ok := r.attachments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.attachments, id)
	return nil
}

func (r *fakeTaskRepo) DueSoon(within time.Duration) ([]domain.Task, error) {
	now := time.Now()
	var tasks []domain.Task
	for _, task := range r.tasks {
		if task.DueDate == nil || task.Status == domain.StatusDone {
			continue
		}
		if task.DueDate.After(now) && task.DueDate.Before(now.Add(within)) {
			tasks = append(tasks, *task)
		}
	}
	return tasks, nil
}

type fakeTaskListRepo struct {
	lists map[uuid.UUID]*domain.TaskList
	clk   *clock
}

func newFakeTaskListRepo() *fakeTaskListRepo {
	return &fakeTaskListRepo{lists: make(map[uuid.UUID]*domain.TaskList), clk: newClock()}
}

func (r *fakeTaskListRepo) Create(list *domain.TaskList) error {
	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	list.CreatedAt = r.clk.next()
	copied := *list
	r.lists[list.ID] = &copied
	return nil
}

func (r *fakeTaskListRepo) FindByID(id uuid.UUID) (*domain.TaskList, error) {
	list, ok := r.lists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *list
	return &copied, nil
}

func (r *fakeTaskListRepo) ListByUser(userID uuid.UUID) ([]domain.TaskList, error) {
	var lists []domain.TaskList
	for _, list := range r.lists {
		if list.UserID == userID {
			lists = append(lists, *list)
		}
	}
	sort.Slice(lists, func(i, j int) bool {
		return lists[i].CreatedAt.After(lists[j].CreatedAt)
	})
	return lists, nil
}

func (r *fakeTaskListRepo) Update(list *domain.TaskList) error {
	if _, ok := r.lists[list.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *list
	r.lists[list.ID] = &copied
	return nil
}

func (r *fakeTaskListRepo) Delete(id uuid.UUID) error {
	if _, ok := r.lists[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.lists, id)
	return nil
}

type fakeChecklistRepo struct {
	checklists map[uuid.UUID]*domain.Checklist
	items      map[uuid.UUID]*domain.ChecklistItem
	clk        *clock
}

func newFakeChecklistRepo() *fakeChecklistRepo {
	return &fakeChecklistRepo{
		checklists: make(map[uuid.UUID]*domain.Checklist),
		items:      make(map[uuid.UUID]*domain.ChecklistItem),
		clk:        newClock(),
	}
}

func (r *fakeChecklistRepo) CreateChecklist(checklist *domain.Checklist) error {
	if checklist.ID == uuid.Nil {
		checklist.ID = uuid.New()
	}
	checklist.CreatedAt = r.clk.next()
	copied := *checklist
	r.checklists[checklist.ID] = &copied
	return nil
}

func (r *fakeChecklistRepo) FindChecklistByID(id uuid.UUID) (*domain.Checklist, error) {
	checklist, ok := r.checklists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *checklist
	copied.Items = nil
	for _, item := range r.items {
		if item.ChecklistID == id {
			copied.Items = append(copied.Items, *item)
		}
	}
	// Mirrors the repository's display ordering contract.
	sort.Slice(copied.Items, func(i, j int) bool {
		if copied.Items[i].Position != copied.Items[j].Position {
			return copied.Items[i].Position < copied.Items[j].Position
		}
		return copied.Items[i].CreatedAt.Before(copied.Items[j].CreatedAt)
	})
	return &copied, nil
}

func (r *fakeChecklistRepo) DeleteChecklist(id uuid.UUID) error {
	if _, ok := r.checklists[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.checklists, id)
	for itemID, item := range r.items {
		if item.ChecklistID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *fakeChecklistRepo) AddItem(item *domain.ChecklistItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = r.clk.next()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeChecklistRepo) FindItemByID(id uuid.UUID) (*domain.ChecklistItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeChecklistRepo) UpdateItem(item *domain.ChecklistItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeChecklistRepo) DeleteItem(id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

var errStorageDown = errors.New("storage unavailable")

// fakeStorage records uploads and deletes, optionally failing on
// command.
type fakeStorage struct {
	objects    map[string][]byte
	deleted    []string
	failUpload bool
	failDelete bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	if s.failUpload {
		return "", errStorageDown
	}
	url := "http://storage.local/task-attachments/" + uuid.New().String() + "-" + filename
	s.objects[url] = content
	return url, nil
}

func (s *fakeStorage) Delete(ctx context.Context, fileURL string) error {
	if s.failDelete {
		return errStorageDown
	}
	delete(s.objects, fileURL)
	s.deleted = append(s.deleted, fileURL)
	return nil
}
