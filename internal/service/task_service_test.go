package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

type taskServiceFixture struct {
	svc     TaskService
	tasks   *fakeTaskRepo
	lists   *fakeTaskListRepo
	storage *fakeStorage
}

func newTaskServiceFixture() *taskServiceFixture {
	tasks := newFakeTaskRepo()
	lists := newFakeTaskListRepo()
	store := newFakeStorage()
	return &taskServiceFixture{
		svc:     NewTaskService(tasks, lists, store, testLogger()),
		tasks:   tasks,
		lists:   lists,
		storage: store,
	}
}

func (f *taskServiceFixture) createTask(t *testing.T, userID uuid.UUID, title string) *TaskResponse {
	t.Helper()
	task, err := f.svc.Create(context.Background(), userID, CreateTaskRequest{Title: title})
	if err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}

func TestTaskPrivacyAcrossUsers(t *testing.T) {
	f := newTaskServiceFixture()
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	task := f.createTask(t, alice, "alice's task")

	if _, err := f.svc.Get(ctx, task.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign get: err = %v, want ErrNotFound", err)
	}
	if _, err := f.svc.Update(ctx, task.ID, bob, UpdateTaskRequest{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign update: err = %v, want ErrNotFound", err)
	}
	if err := f.svc.Delete(ctx, task.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete: err = %v, want ErrNotFound", err)
	}

	bobTasks, err := f.svc.List(ctx, bob, repository.TaskFilter{}, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bobTasks) != 0 {
		t.Errorf("bob sees %d tasks, want 0", len(bobTasks))
	}

	// The owner still sees it.
	if _, err := f.svc.Get(ctx, task.ID, alice); err != nil {
		t.Errorf("owner get: %v", err)
	}
}

func TestCreateTaskValidatesTaskList(t *testing.T) {
	f := newTaskServiceFixture()
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	bobList := &domain.TaskList{UserID: bob, Name: "bob's list"}
	if err := f.lists.Create(bobList); err != nil {
		t.Fatalf("seed list: %v", err)
	}

	missing := uuid.New()
	_, err := f.svc.Create(ctx, alice, CreateTaskRequest{Title: "t", TaskListID: &missing})
	if !errors.Is(err, ErrInvalidTaskList) {
		t.Errorf("missing list: err = %v, want ErrInvalidTaskList", err)
	}

	// Another user's list is just as invalid as a missing one.
	_, err = f.svc.Create(ctx, alice, CreateTaskRequest{Title: "t", TaskListID: &bobList.ID})
	if !errors.Is(err, ErrInvalidTaskList) {
		t.Errorf("foreign list: err = %v, want ErrInvalidTaskList", err)
	}

	aliceList := &domain.TaskList{UserID: alice, Name: "alice's list"}
	if err := f.lists.Create(aliceList); err != nil {
		t.Fatalf("seed list: %v", err)
	}
	task, err := f.svc.Create(ctx, alice, CreateTaskRequest{Title: "t", TaskListID: &aliceList.ID})
	if err != nil {
		t.Fatalf("create with own list: %v", err)
	}
	if task.TaskListID == nil || *task.TaskListID != aliceList.ID {
		t.Errorf("task list id = %v, want %v", task.TaskListID, aliceList.ID)
	}
}

func TestListTasksFiltersAndOrder(t *testing.T) {
	f := newTaskServiceFixture()
	ctx := context.Background()
	alice := uuid.New()

	first := f.createTask(t, alice, "first")
	second := f.createTask(t, alice, "second")
	third := f.createTask(t, alice, "third")

	done := domain.StatusDone
	if _, err := f.svc.Update(ctx, second.ID, alice, UpdateTaskRequest{Status: &done}); err != nil {
		t.Fatalf("mark done: %v", err)
	}

	all, err := f.svc.List(ctx, alice, repository.TaskFilter{}, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// Newest first.
	if all[0].ID != third.ID || all[2].ID != first.ID {
		t.Errorf("order = [%s %s %s], want newest first", all[0].Title, all[1].Title, all[2].Title)
	}

	todo := domain.StatusTodo
	notDone, err := f.svc.List(ctx, alice, repository.TaskFilter{Status: &todo}, 20, 0)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	for _, task := range notDone {
		if task.ID == second.ID {
			t.Errorf("status filter returned the done task")
		}
	}
	if len(notDone) != 2 {
		t.Errorf("filtered len = %d, want 2", len(notDone))
	}

	page, err := f.svc.List(ctx, alice, repository.TaskFilter{}, 1, 1)
	if err != nil {
		t.Fatalf("paged list: %v", err)
	}
	if len(page) != 1 || page[0].ID != second.ID {
		t.Errorf("page = %+v, want just the middle task", page)
	}
}

func TestUpdateTaskStatusRoundTrip(t *testing.T) {
	f := newTaskServiceFixture()
	ctx := context.Background()
	alice := uuid.New()

	task := f.createTask(t, alice, "work")
	if task.Status != domain.StatusTodo {
		t.Fatalf("initial status = %s, want todo", task.Status)
	}

	done := domain.StatusDone
	if _, err := f.svc.Update(ctx, task.ID, alice, UpdateTaskRequest{Status: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := f.svc.Get(ctx, task.ID, alice)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusDone {
		t.Errorf("status = %s, want done", got.Status)
	}
}

func TestAddAttachment(t *testing.T) {
	f := newTaskServiceFixture()
	ctx := context.Background()
	alice := uuid.New()

	task := f.createTask(t, alice, "with file")
	content := []byte("file bytes")

	got, err := f.svc.AddAttachment(ctx, task.ID, alice, content, "notes.txt", "text/plain")
	if err != nil {
		t.Fatalf("add attachment: %v", err)
	}
	if len(got.Attachments) != 1 {
		t.Fatalf("attachments = %d, want 1", len(got.Attachments))
	}
	att := got.Attachments[0]
	if att.Filename != "notes.txt" || att.FileSizeBytes != int64(len(content)) {
		t.Errorf("attachment = %+v", att)
	}
	if _, ok := f.storage.objects[att.FileURL]; !ok {
		t.Errorf("no object stored at %s", att.FileURL)
	}

	// Foreign task: nothing uploaded, merged not found.
	if _, err := f.svc.AddAttachment(ctx, task.ID, uuid.New(), content, "x", "text/plain"); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign add: err = %v, want ErrNotFound", err)
	}
}

func TestRemoveAttachment(t *testing.T) {
	f := newTaskServiceFixture()
	ctx := context.Background()
	alice := uuid.New()

	task := f.createTask(t, alice, "with file")
	got, err := f.svc.AddAttachment(ctx, task.ID, alice, []byte("x"), "a.txt", "text/plain")
	if err != nil {
		t.Fatalf("add attachment: %v", err)
	}
	att := got.Attachments[0]

	// A stranger cannot remove it, and storage stays untouched.
	if err := f.svc.RemoveAttachment(ctx, att.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign remove: err = %v, want ErrNotFound", err)
	}
	if len(f.storage.deleted) != 0 {
		t.Errorf("storage mutated by unauthorized remove: %v", f.storage.deleted)
	}

	// Unknown attachment behaves the same.
	if err := f.svc.RemoveAttachment(ctx, uuid.New(), alice); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing remove: err = %v, want ErrNotFound", err)
	}

	// Storage failure retains the record.
	f.storage.failDelete = true
	if err := f.svc.RemoveAttachment(ctx, att.ID, alice); err == nil {
		t.Fatal("remove succeeded despite storage failure")
	}
	if _, err := f.tasks.FindAttachmentByID(att.ID); err != nil {
		t.Errorf("record dropped after failed storage delete: %v", err)
	}

	f.storage.failDelete = false
	if err := f.svc.RemoveAttachment(ctx, att.ID, alice); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := f.tasks.FindAttachmentByID(att.ID); err == nil {
		t.Error("record still present after remove")
	}
	if len(f.storage.deleted) != 1 || f.storage.deleted[0] != att.FileURL {
		t.Errorf("deleted = %v, want [%s]", f.storage.deleted, att.FileURL)
	}
}

func TestDeleteTaskCleansUpStorage(t *testing.T) {
	f := newTaskServiceFixture()
	ctx := context.Background()
	alice := uuid.New()

	task := f.createTask(t, alice, "doomed")
	if _, err := f.svc.AddAttachment(ctx, task.ID, alice, []byte("a"), "a.txt", "text/plain"); err != nil {
		t.Fatalf("add attachment: %v", err)
	}
	if _, err := f.svc.AddAttachment(ctx, task.ID, alice, []byte("b"), "b.txt", "text/plain"); err != nil {
		t.Fatalf("add attachment: %v", err)
	}

	// A storage failure aborts the delete and keeps the task.
	f.storage.failDelete = true
	if err := f.svc.Delete(ctx, task.ID, alice); err == nil {
		t.Fatal("delete succeeded despite storage failure")
	}
	if _, err := f.svc.Get(ctx, task.ID, alice); err != nil {
		t.Fatalf("task gone after failed delete: %v", err)
	}

	f.storage.failDelete = false
	if err := f.svc.Delete(ctx, task.ID, alice); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.storage.deleted) != 2 {
		t.Errorf("deleted %d objects, want 2", len(f.storage.deleted))
	}
	if _, err := f.svc.Get(ctx, task.ID, alice); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
}
