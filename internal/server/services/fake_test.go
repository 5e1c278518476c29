package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// memStore is an in-memory RepositoryManager. The DBTX handed to Users and
// Tasks is ignored; transactions still go through a real sqlite handle so
// dbx.WithTx behaves as in production.
type memStore struct {
	mu    sync.Mutex
	users map[string]*models.User
	tasks map[string]*models.Task

	failWith error

	// beforeCreateUser runs after the email lookup and before the insert,
	// standing in for a concurrent registration.
	beforeCreateUser func(m *memStore)
	// createUserErr is returned by the user insert as the driver would.
	createUserErr error
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}, tasks: map[string]*models.Task{}}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository               { return memUsers{m} }
func (m *memStore) Tasks(dbx.DBTX) tasks.Repository               { return memTasks{m} }

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if r.m.beforeCreateUser != nil {
		r.m.beforeCreateUser(r.m)
	}

	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return nil, r.m.failWith
	}
	if r.m.createUserErr != nil {
		return nil, r.m.createUserErr
	}
	for _, existing := range r.m.users {
		if existing.Email == u.Email {
			return nil, common.ErrUserExists
		}
	}
	c := *u
	r.m.users[u.ID] = &c
	return &c, nil
}

func (r memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return nil, r.m.failWith
	}
	for _, u := range r.m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

type memTasks struct{ m *memStore }

func (r memTasks) owned(userID, id string) (*models.Task, error) {
	t, ok := r.m.tasks[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (r memTasks) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return nil, r.m.failWith
	}
	c := *t
	if u, ok := r.m.users[t.UserID]; ok {
		c.Owner = models.Owner{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	r.m.tasks[t.ID] = &c
	out := c
	return &out, nil
}

func (r memTasks) GetByID(_ context.Context, userID, id string) (*models.Task, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.owned(userID, id)
}

func (r memTasks) GetForUpdate(ctx context.Context, userID, id string) (*models.Task, error) {
	return r.GetByID(ctx, userID, id)
}

func (r memTasks) Update(_ context.Context, t *models.Task) (*models.Task, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored, err := r.owned(t.UserID, t.ID)
	if err != nil {
		return nil, err
	}
	c := *t
	c.Version = stored.Version + 1
	c.CreatedAt = stored.CreatedAt
	r.m.tasks[t.ID] = &c
	out := c
	return &out, nil
}

func (r memTasks) Delete(_ context.Context, userID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, err := r.owned(userID, id); err != nil {
		return err
	}
	delete(r.m.tasks, id)
	return nil
}

func (r memTasks) matching(userID string, f models.TaskFilter) []*models.Task {
	var out []*models.Task
	for _, t := range r.m.tasks {
		if t.UserID != userID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r memTasks) List(_ context.Context, userID string, f models.TaskFilter, limit, offset int) ([]*models.Task, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return nil, r.m.failWith
	}
	all := r.matching(userID, f)
	if offset >= len(all) {
		return []*models.Task{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r memTasks) Count(_ context.Context, userID string, f models.TaskFilter) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return 0, r.m.failWith
	}
	return int64(len(r.matching(userID, f))), nil
}

// fixture wires both services to one memStore and a stepping clock.
type fixture struct {
	store *memStore
	users *UserService
	tasks *TaskService
	clock *stepClock
}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

// Now advances by one second per call so created_at is strictly increasing.
func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	clock := &stepClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := newMemStore()

	us := NewUserService(db, store, auth.NewTokenService([]byte("test-secret"), cfg.TokenValidityDuration), hasher, cfg)
	ts := NewTaskService(db, store, cfg)
	ts.now = clock.Now

	return &fixture{store: store, users: us, tasks: ts, clock: clock}
}

func (f *fixture) register(t *testing.T, name, email string) string {
	t.Helper()
	res, err := f.users.Register(context.Background(), name, email, "password123")
	require.NoError(t, err)
	return res.User.ID
}

func (f *fixture) newTask(t *testing.T, userID, title string) *models.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), userID, models.NewTask{
		Title:       title,
		Description: "description of " + title,
		DueDate:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return task
}
