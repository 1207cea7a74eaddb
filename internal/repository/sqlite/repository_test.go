package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRepos(t *testing.T) (repository.UserRepository, repository.TaskRepository) {
	t.Helper()

	db := openTestDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	if err := users.Init(ctx); err != nil {
		t.Fatalf("users Init() error = %v", err)
	}
	tasks := NewTaskRepository(db)
	if err := tasks.Init(ctx); err != nil {
		t.Fatalf("tasks Init() error = %v", err)
	}
	return users, tasks
}

func mustCreateUser(t *testing.T, users repository.UserRepository, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return user
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	users, _ := newTestRepos(t)

	mustCreateUser(t, users, "a@x.com")

	dup := &domain.User{
		Username:     "someone-else",
		Email:        "a@x.com",
		PasswordHash: "other-hash",
	}
	err := users.Create(context.Background(), dup)
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("Create() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	users, _ := newTestRepos(t)

	created := mustCreateUser(t, users, "a@x.com")
	if created.ID == "" {
		t.Fatal("Create() did not assign an id")
	}

	got, err := users.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != created.ID || got.Username != "tester" {
		t.Errorf("GetByEmail() = %+v, want id %q", got, created.ID)
	}

	_, err = users.GetByEmail(context.Background(), "missing@x.com")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByEmail(missing) error = %v, want ErrNotFound", err)
	}
}

func TestTaskRepository_OwnerScoping(t *testing.T) {
	users, tasks := newTestRepos(t)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice@x.com")
	bob := mustCreateUser(t, users, "bob@x.com")

	task := &domain.Task{
		Title:       "Buy milk",
		Description: "2% milk, 1 gallon",
		Status:      domain.TaskStatusPending,
		UserID:      alice.ID,
	}
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// owner sees the task
	if _, err := tasks.Get(ctx, alice.ID, task.ID); err != nil {
		t.Fatalf("Get() as owner error = %v", err)
	}

	// another user gets the same signal as for a missing task
	if _, err := tasks.Get(ctx, bob.ID, task.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Get() as non-owner error = %v, want ErrNotFound", err)
	}

	stolen := *task
	stolen.UserID = bob.ID
	if err := tasks.Update(ctx, &stolen); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update() as non-owner error = %v, want ErrNotFound", err)
	}

	if err := tasks.Delete(ctx, bob.ID, task.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Delete() as non-owner error = %v, want ErrNotFound", err)
	}

	listed, err := tasks.ListByUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("ListByUser() for non-owner returned %d tasks, want 0", len(listed))
	}
}

func TestTaskRepository_ListNewestFirst(t *testing.T) {
	users, tasks := newTestRepos(t)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice@x.com")

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		task := &domain.Task{
			Title:       title,
			Description: "some description",
			Status:      domain.TaskStatusPending,
			UserID:      alice.ID,
		}
		if err := tasks.Create(ctx, task); err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
		time.Sleep(5 * time.Millisecond) // distinct creation timestamps
	}

	listed, err := tasks.ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(listed) != len(titles) {
		t.Fatalf("ListByUser() returned %d tasks, want %d", len(listed), len(titles))
	}
	for i, want := range []string{"third", "second", "first"} {
		if listed[i].Title != want {
			t.Errorf("ListByUser()[%d].Title = %q, want %q", i, listed[i].Title, want)
		}
	}
}

func TestTaskRepository_DeleteMissing(t *testing.T) {
	users, tasks := newTestRepos(t)

	alice := mustCreateUser(t, users, "alice@x.com")

	err := tasks.Delete(context.Background(), alice.ID, "no-such-task")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}
