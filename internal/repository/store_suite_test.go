package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/repository"
	"github.com/tasknest/tasknest/internal/testutil"
)

// runStoreSuite exercises the Store contract against a fresh store per subtest.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Run("CreateAndGetUser", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		user := testutil.NewTestUser(t, "ada@example.com")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		byEmail, err := store.GetUserByEmail(ctx, "ada@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail.ID != user.ID {
			t.Errorf("ID mismatch: got %q, want %q", byEmail.ID, user.ID)
		}
		if byEmail.HashedPassword != user.HashedPassword {
			t.Errorf("HashedPassword mismatch: got %q, want %q", byEmail.HashedPassword, user.HashedPassword)
		}
		if byEmail.DisplayName() != user.DisplayName() {
			t.Errorf("Name mismatch: got %q, want %q", byEmail.DisplayName(), user.DisplayName())
		}
		if !byEmail.CreatedAt.Equal(user.CreatedAt) {
			t.Errorf("CreatedAt mismatch: got %v, want %v", byEmail.CreatedAt, user.CreatedAt)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Email != user.Email {
			t.Errorf("Email mismatch: got %q, want %q", byID.Email, user.Email)
		}
	})

	t.Run("UserWithoutName", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		user := testutil.NewTestUser(t, "anon@example.com")
		user.Name = nil
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.Name != nil {
			t.Errorf("Name = %q, want nil", *got.Name)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		first := testutil.NewTestUser(t, "dup@example.com")
		if err := store.CreateUser(ctx, first); err != nil {
			t.Fatalf("CreateUser (first) failed: %v", err)
		}

		second := testutil.NewTestUser(t, "dup@example.com")
		if err := store.CreateUser(ctx, second); !errors.Is(err, repository.ErrEmailExists) {
			t.Fatalf("expected ErrEmailExists, got %v", err)
		}

		got, err := store.GetUserByEmail(ctx, "dup@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != first.ID {
			t.Errorf("original user replaced: got %q, want %q", got.ID, first.ID)
		}
	})

	t.Run("EmailIsCaseSensitive", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		if err := store.CreateUser(ctx, testutil.NewTestUser(t, "Case@example.com")); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if err := store.CreateUser(ctx, testutil.NewTestUser(t, "case@example.com")); err != nil {
			t.Fatalf("CreateUser with different case failed: %v", err)
		}
	})

	t.Run("UserNotFound", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, repository.ErrUserNotFound) {
			t.Errorf("GetUserByEmail: expected ErrUserNotFound, got %v", err)
		}
		if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, repository.ErrUserNotFound) {
			t.Errorf("GetUserByID: expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("CreateTaskAssignsSequentialIDs", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		owner := createUser(t, store, "seq@example.com")

		first := testutil.NewTestTask(t, owner.ID, "first")
		second := testutil.NewTestTask(t, owner.ID, "second")
		for _, task := range []*model.Task{first, second} {
			if err := store.CreateTask(ctx, task); err != nil {
				t.Fatalf("CreateTask failed: %v", err)
			}
		}

		if first.ID < 1 {
			t.Errorf("first ID = %d, want >= 1", first.ID)
		}
		if second.ID != first.ID+1 {
			t.Errorf("second ID = %d, want %d", second.ID, first.ID+1)
		}

		got, err := store.GetTask(ctx, first.ID, owner.ID)
		if err != nil {
			t.Fatalf("GetTask failed: %v", err)
		}
		if got.Title != "first" || got.Completed || got.UserID != owner.ID {
			t.Errorf("unexpected task: %+v", got)
		}
		if got.Description != nil {
			t.Errorf("Description = %q, want nil", *got.Description)
		}
	})

	t.Run("ListTasksFilters", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		owner := createUser(t, store, "list@example.com")
		other := createUser(t, store, "other@example.com")

		open := createTask(t, store, owner.ID, "open")
		done := createTask(t, store, owner.ID, "done")
		createTask(t, store, other.ID, "foreign")

		if _, err := store.ToggleTask(ctx, done.ID, owner.ID); err != nil {
			t.Fatalf("ToggleTask failed: %v", err)
		}

		tests := []struct {
			name   string
			status model.TaskStatus
			want   []int64
		}{
			{"all", model.TaskStatusAll, []int64{open.ID, done.ID}},
			{"pending", model.TaskStatusPending, []int64{open.ID}},
			{"completed", model.TaskStatusCompleted, []int64{done.ID}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tasks, err := store.ListTasks(ctx, owner.ID, tt.status.CompletedFilter())
				if err != nil {
					t.Fatalf("ListTasks failed: %v", err)
				}
				if got := taskIDs(tasks); !equalIDs(got, tt.want) {
					t.Errorf("ListTasks ids = %v, want %v", got, tt.want)
				}
			})
		}
	})

	t.Run("ListTasksEmpty", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		owner := createUser(t, store, "empty@example.com")

		tasks, err := store.ListTasks(ctx, owner.ID, nil)
		if err != nil {
			t.Fatalf("ListTasks failed: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			t.Errorf("ListTasks = %v, want empty non-nil slice", tasks)
		}
	})

	t.Run("UpdateTaskPartial", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		owner := createUser(t, store, "update@example.com")
		task := createTask(t, store, owner.ID, "Buy milk")

		desc := "two litres"
		updated, err := store.UpdateTask(ctx, task.ID, owner.ID, model.TaskChanges{Description: &desc})
		if err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		if updated.Title != "Buy milk" {
			t.Errorf("Title changed: got %q", updated.Title)
		}
		if updated.Description == nil || *updated.Description != desc {
			t.Errorf("Description = %v, want %q", updated.Description, desc)
		}
		if updated.UpdatedAt.Before(task.UpdatedAt) {
			t.Errorf("UpdatedAt went backwards: %v < %v", updated.UpdatedAt, task.UpdatedAt)
		}

		title := "Buy oat milk"
		done := true
		updated, err = store.UpdateTask(ctx, task.ID, owner.ID, model.TaskChanges{Title: &title, Completed: &done})
		if err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		if updated.Title != title || !updated.Completed {
			t.Errorf("unexpected task after update: %+v", updated)
		}
		if updated.Description == nil || *updated.Description != desc {
			t.Errorf("Description should be untouched, got %v", updated.Description)
		}
	})

	t.Run("UpdateTaskClearDescription", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		owner := createUser(t, store, "clear@example.com")
		task := createTask(t, store, owner.ID, "Buy milk")

		desc := "two litres"
		if _, err := store.UpdateTask(ctx, task.ID, owner.ID, model.TaskChanges{Description: &desc}); err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}

		cleared, err := store.UpdateTask(ctx, task.ID, owner.ID, model.TaskChanges{ClearDescription: true})
		if err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		if cleared.Description != nil {
			t.Errorf("Description = %q, want nil", *cleared.Description)
		}
		if cleared.Title != "Buy milk" {
			t.Errorf("Title changed: got %q", cleared.Title)
		}

		got, err := store.GetTask(ctx, task.ID, owner.ID)
		if err != nil {
			t.Fatalf("GetTask failed: %v", err)
		}
		if got.Description != nil {
			t.Errorf("stored Description = %q, want nil", *got.Description)
		}

		// Clearing wins over a value supplied alongside it.
		other := "ignored"
		cleared, err = store.UpdateTask(ctx, task.ID, owner.ID, model.TaskChanges{Description: &other, ClearDescription: true})
		if err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		if cleared.Description != nil {
			t.Errorf("Description = %q, want nil", *cleared.Description)
		}
	})

	t.Run("ToggleTask", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		owner := createUser(t, store, "toggle@example.com")
		task := createTask(t, store, owner.ID, "flip")

		for i, want := range []bool{true, false, true} {
			got, err := store.ToggleTask(ctx, task.ID, owner.ID)
			if err != nil {
				t.Fatalf("ToggleTask #%d failed: %v", i, err)
			}
			if got.Completed != want {
				t.Errorf("ToggleTask #%d completed = %v, want %v", i, got.Completed, want)
			}
		}
	})

	t.Run("DeleteTask", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		owner := createUser(t, store, "delete@example.com")
		task := createTask(t, store, owner.ID, "gone")

		if err := store.DeleteTask(ctx, task.ID, owner.ID); err != nil {
			t.Fatalf("DeleteTask failed: %v", err)
		}
		if _, err := store.GetTask(ctx, task.ID, owner.ID); !errors.Is(err, repository.ErrTaskNotFound) {
			t.Errorf("GetTask after delete: expected ErrTaskNotFound, got %v", err)
		}
		if err := store.DeleteTask(ctx, task.ID, owner.ID); !errors.Is(err, repository.ErrTaskNotFound) {
			t.Errorf("second DeleteTask: expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("ForeignOwnerLooksMissing", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		owner := createUser(t, store, "owner@example.com")
		intruder := createUser(t, store, "intruder@example.com")
		task := createTask(t, store, owner.ID, "private")

		title := "hijacked"
		for _, id := range []int64{task.ID, 9999} {
			if _, err := store.GetTask(ctx, id, intruder.ID); !errors.Is(err, repository.ErrTaskNotFound) {
				t.Errorf("GetTask(%d): expected ErrTaskNotFound, got %v", id, err)
			}
			if _, err := store.UpdateTask(ctx, id, intruder.ID, model.TaskChanges{Title: &title}); !errors.Is(err, repository.ErrTaskNotFound) {
				t.Errorf("UpdateTask(%d): expected ErrTaskNotFound, got %v", id, err)
			}
			if _, err := store.ToggleTask(ctx, id, intruder.ID); !errors.Is(err, repository.ErrTaskNotFound) {
				t.Errorf("ToggleTask(%d): expected ErrTaskNotFound, got %v", id, err)
			}
			if err := store.DeleteTask(ctx, id, intruder.ID); !errors.Is(err, repository.ErrTaskNotFound) {
				t.Errorf("DeleteTask(%d): expected ErrTaskNotFound, got %v", id, err)
			}
		}

		got, err := store.GetTask(ctx, task.ID, owner.ID)
		if err != nil {
			t.Fatalf("GetTask (owner) failed: %v", err)
		}
		if got.Title != "private" || got.Completed {
			t.Errorf("task mutated by foreign owner: %+v", got)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		store := newStore(t)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})
}

func createUser(t *testing.T, store repository.Store, email string) *model.User {
	t.Helper()
	user := testutil.NewTestUser(t, email)
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func createTask(t *testing.T, store repository.Store, ownerID, title string) *model.Task {
	t.Helper()
	task := testutil.NewTestTask(t, ownerID, title)
	if err := store.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	return task
}

func taskIDs(tasks []*model.Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
