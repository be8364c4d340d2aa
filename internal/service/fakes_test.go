package service

import (
	"context"
	"sync"

	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
)

// memoryUsers mirrors the unique indexes of the users table: the uniqueness
// check and the insert happen under one lock.
type memoryUsers struct {
	mu      sync.Mutex
	hasher  PasswordHasher
	nextID  uint
	byEmail map[string]*model.User
	names   map[string]bool
	failErr error
}

func newMemoryUsers(hasher PasswordHasher) *memoryUsers {
	return &memoryUsers{hasher: hasher, byEmail: map[string]*model.User{}, names: map[string]bool{}}
}

func (m *memoryUsers) Create(_ context.Context, user *model.User) error {
	if m.failErr != nil {
		return m.failErr
	}
	hashed, err := m.hasher.Hash(user.Password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.names[user.Username] {
		return apperrors.ErrUsernameExists
	}
	if _, ok := m.byEmail[user.Email]; ok {
		return apperrors.ErrEmailExists
	}
	m.nextID++
	user.ID = m.nextID
	user.Password = hashed
	stored := *user
	m.byEmail[user.Email] = &stored
	m.names[user.Username] = true
	return nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

type memoryEmployees struct {
	mu      sync.Mutex
	nextID  uint
	byID    map[uint]*model.Employee
	byEmail map[string]bool
}

func newMemoryEmployees() *memoryEmployees {
	return &memoryEmployees{byID: map[uint]*model.Employee{}, byEmail: map[string]bool{}}
}

func (m *memoryEmployees) Create(_ context.Context, e *model.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byEmail[e.Email] {
		return apperrors.ErrEmailExists
	}
	m.nextID++
	e.ID = m.nextID
	stored := *e
	m.byID[e.ID] = &stored
	m.byEmail[e.Email] = true
	return nil
}

func (m *memoryEmployees) GetByID(_ context.Context, id uint) (*model.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[id]
	if !ok {
		return nil, apperrors.ErrEmployeeNotFound
	}
	copied := *e
	return &copied, nil
}
