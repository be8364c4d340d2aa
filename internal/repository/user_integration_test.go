//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
	"github.com/Payphone-Digital/auth-service/internal/repository"
	"github.com/Payphone-Digital/auth-service/internal/service"
	"github.com/Payphone-Digital/auth-service/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("auth_test"),
		postgres.WithUsername("auth"),
		postgres.WithPassword("auth"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.NewPostgresDB(ctx, database.Config{DSN: dsn, Environment: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB(db) })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestUserRepositoryIntegration(t *testing.T) {
	db := setupPostgres(t)
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	repo := repository.NewUserRepository(db, hasher)
	ctx := context.Background()

	t.Run("stores a hash, never the plaintext", func(t *testing.T) {
		user := &model.User{Username: "alice", Email: "a@x.com", Password: "Passw0rd!"}
		require.NoError(t, repo.Create(ctx, user))

		stored, err := repo.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.NotEqual(t, "Passw0rd!", stored.Password)
		assert.True(t, hasher.Verify("Passw0rd!", stored.Password))
		assert.Nil(t, stored.BirthCity)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{Username: "alice2", Email: "a@x.com", Password: "Passw0rd!"})
		assert.ErrorIs(t, err, apperrors.ErrEmailExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{Username: "alice", Email: "other@x.com", Password: "Passw0rd!"})
		assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
	})

	t.Run("concurrent duplicates admit exactly one", func(t *testing.T) {
		const n = 8
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Create(ctx, &model.User{
					Username: "racer" + string(rune('a'+i)),
					Email:    "race@x.com",
					Password: "Passw0rd!",
				})
			}(i)
		}
		wg.Wait()

		var ok int
		for _, err := range errs {
			if err == nil {
				ok++
				continue
			}
			assert.ErrorIs(t, err, apperrors.ErrEmailExists)
		}
		assert.Equal(t, 1, ok)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("update password rehashes", func(t *testing.T) {
		stored, err := repo.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)

		require.NoError(t, repo.UpdatePassword(ctx, stored.ID, "N3wPassw0rd!"))

		updated, err := repo.GetByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.True(t, hasher.Verify("N3wPassw0rd!", updated.Password))
		assert.False(t, hasher.Verify("Passw0rd!", updated.Password))
	})
}

func TestEmployeeRepositoryIntegration(t *testing.T) {
	db := setupPostgres(t)
	repo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	employee := &model.Employee{Name: "Bob", Email: "b@x.com", Age: 30, CreatedBy: 1}
	require.NoError(t, repo.Create(ctx, employee))

	got, err := repo.GetByID(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)

	err = repo.Create(ctx, &model.Employee{Name: "Bobby", Email: "b@x.com", Age: 31, CreatedBy: 1})
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}
