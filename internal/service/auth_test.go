package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/Payphone-Digital/auth-service/internal/dto"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*AuthService, *memoryUsers, *JWTService) {
	t.Helper()
	hasher := NewBcryptHasher(bcrypt.MinCost)
	users := newMemoryUsers(hasher)
	tokens := NewJWTService(testJWTConfig())
	svc, err := NewAuthService(users, hasher, tokens, validation.NewRegistry())
	require.NoError(t, err)
	return svc, users, tokens
}

func aliceAttrs() map[string]any {
	return map[string]any{"username": "alice", "email": "a@x.com", "password": "Passw0rd!"}
}

func TestRegisterV1(t *testing.T) {
	svc, users, _ := newTestAuth(t)

	res, err := svc.Register(context.Background(), "v1", aliceAttrs())
	require.NoError(t, err)
	assert.Equal(t, "users", res.Type)
	assert.Equal(t, "1", res.ID)

	body, err := json.Marshal(res.Attributes)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice","email":"a@x.com"}`, string(body))
	assert.NotContains(t, string(body), "Passw0rd!")

	stored, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", stored.Password)
	assert.NotContains(t, string(body), stored.Password)
}

func TestRegisterV1DropsBirthCity(t *testing.T) {
	svc, _, _ := newTestAuth(t)

	attrs := aliceAttrs()
	attrs["birthCity"] = "Lisbon"
	res, err := svc.Register(context.Background(), "v1", attrs)
	require.NoError(t, err)
	assert.Nil(t, res.Attributes.(dto.UserAttributes).BirthCity)
}

func TestRegisterV2(t *testing.T) {
	svc, _, _ := newTestAuth(t)

	t.Run("includes birth city", func(t *testing.T) {
		attrs := aliceAttrs()
		attrs["birthCity"] = "Lisbon"
		res, err := svc.Register(context.Background(), "v2", attrs)
		require.NoError(t, err)

		city := res.Attributes.(dto.UserAttributes).BirthCity
		require.NotNil(t, city)
		assert.Equal(t, "Lisbon", *city)
	})

	t.Run("missing birth city", func(t *testing.T) {
		attrs := map[string]any{"username": "bob", "email": "b@x.com", "password": "Passw0rd!"}
		_, err := svc.Register(context.Background(), "v2", attrs)

		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, apperrors.FieldError{Field: "birthCity", Message: "Required"}, verr.Fields[0])
	})
}

func TestRegisterUnknownVersionUsesBaseSchema(t *testing.T) {
	svc, _, _ := newTestAuth(t)

	res, err := svc.Register(context.Background(), "v9", aliceAttrs())
	require.NoError(t, err)
	assert.Nil(t, res.Attributes.(dto.UserAttributes).BirthCity)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "v1", aliceAttrs())
	require.NoError(t, err)

	sameEmail := map[string]any{"username": "alice2", "email": "a@x.com", "password": "Passw0rd!"}
	_, err = svc.Register(ctx, "v1", sameEmail)
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)

	sameName := map[string]any{"username": "alice", "email": "other@x.com", "password": "Passw0rd!"}
	_, err = svc.Register(ctx, "v1", sameName)
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
}

func TestRegisterConcurrentDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuth(t)

	const n = 10
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		dups int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			attrs := map[string]any{
				"username": "user" + string(rune('a'+i)),
				"email":    "same@x.com",
				"password": "Passw0rd!",
			}
			_, err := svc.Register(context.Background(), "v1", attrs)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperrors.ErrEmailExists):
				dups++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dups)
}

func TestRegisterStoreFailure(t *testing.T) {
	svc, users, _ := newTestAuth(t)
	users.failErr = apperrors.WrapError(apperrors.ErrHashFailed, errors.New("boom"))

	_, err := svc.Register(context.Background(), "v1", aliceAttrs())
	assert.ErrorIs(t, err, apperrors.ErrHashFailed)

	status, _ := apperrors.Render(err)
	assert.Equal(t, 500, status)
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "v1", aliceAttrs())
	require.NoError(t, err)

	result, err := svc.Login(ctx, map[string]any{"email": "a@x.com", "password": "Passw0rd!"})
	require.NoError(t, err)
	assert.Equal(t, "1", result.UserID)
	assert.Equal(t, "alice", result.Username)

	claims, err := tokens.ParseAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)

	refresh, err := tokens.ParseRefreshToken(result.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "1", refresh.Subject)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "v1", aliceAttrs())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, map[string]any{"email": "a@x.com", "password": "nope"})
	_, unknownEmail := svc.Login(ctx, map[string]any{"email": "ghost@x.com", "password": "Passw0rd!"})

	require.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, apperrors.ErrInvalidCredentials)

	s1, d1 := apperrors.Render(wrongPassword)
	s2, d2 := apperrors.Render(unknownEmail)
	assert.Equal(t, 401, s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, d1, d2)
	assert.Nil(t, d1.Errors[0].Source)
}

func TestLoginValidation(t *testing.T) {
	svc, _, _ := newTestAuth(t)

	_, err := svc.Login(context.Background(), map[string]any{"email": "not-an-email", "password": ""})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []apperrors.FieldError{
		{Field: "email", Message: "Invalid email address"},
		{Field: "password", Message: "Password is required"},
	}, verr.Fields)
}
