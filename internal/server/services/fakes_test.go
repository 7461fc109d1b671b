package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/dbx"
	"github.com/dmitrijs2005/gophprofile/internal/server/models"
	usersrepo "github.com/dmitrijs2005/gophprofile/internal/server/repositories/users"
)

// memUsersRepo is an in-memory users.Repository with optional fault injection.
type memUsersRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
	now    time.Time

	createErr error
	getErr    error
	updateErr error
	deleteErr error

	creates int
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{
		byID: map[int64]*models.User{},
		now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt, u.UpdatedAt = r.now, r.now
	cp := *u
	r.byID[u.ID] = &cp
	return u, nil
}

func (r *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsersRepo) Update(ctx context.Context, id int64, name, email *string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if email != nil {
		for otherID, other := range r.byID {
			if otherID != id && other.Email == *email {
				return nil, common.ErrorAlreadyExists
			}
		}
		u.Email = *email
	}
	if name != nil {
		n := *name
		u.Name = &n
	}
	u.UpdatedAt = u.UpdatedAt.Add(time.Second)
	cp := *u
	return &cp, nil
}

func (r *memUsersRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

type fakeRepoManager struct {
	users *memUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.users }
