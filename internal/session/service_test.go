package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
	"github.com/Ahsankhan2345/shopping-hify/internal/repository"
)

func newTestService(t *testing.T) (*Service, *repository.MemoryUserStore) {
	t.Helper()
	users := repository.NewMemoryUserStore()
	tokens := NewTokenManager("test-secret", time.Hour)
	svc := NewService(users, repository.NewMemorySessionStore(), repository.NewMemorySessionStore(), tokens, zap.NewNop())
	return svc, users
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name, userName, email, password string
	}{
		{"empty name", "", "a@b.com", "secret1"},
		{"empty email", "Ali", "", "secret1"},
		{"empty password", "Ali", "a@b.com", ""},
		{"password too short", "Ali", "a@b.com", "five5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.userName, tc.email, tc.password, false)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestRegisterPasswordLengthBoundary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ali", "ali@example.com", "12345", false)
	assert.True(t, domain.IsValidation(err), "5 characters must fail")

	sess, err := svc.Register(ctx, "Ali", "ali@example.com", "123456", false)
	require.NoError(t, err, "6 characters must succeed")
	assert.NotEmpty(t, sess.AuthToken)
	assert.Equal(t, "ali@example.com", sess.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ali", "ali@example.com", "secret1", false)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "ali@example.com", "secret2", false)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ali", "ali@example.com", "secret1", false)
	require.NoError(t, err)

	user, err := users.GetUserByEmail(ctx, "ali@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "secret1")
}

func TestLoginByEmailAndByName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ali", "ali@example.com", "secret1", false)
	require.NoError(t, err)

	byEmail, err := svc.Login(ctx, "ali@example.com", "secret1", false)
	require.NoError(t, err)
	assert.Equal(t, "Ali", byEmail.Name)

	byName, err := svc.Login(ctx, "Ali", "secret1", false)
	require.NoError(t, err)
	assert.Equal(t, "ali@example.com", byName.Email)
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "secret1", false)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Login(ctx, "ali@example.com", "", false)
	assert.True(t, domain.IsValidation(err))
}

func TestLoginUnknownIdentifier(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Login(context.Background(), "ghost@example.com", "secret1", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoginWrongPasswordEstablishesNoSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Ali", "ali@example.com", "secret1", false)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, reg.AuthToken))

	_, err = svc.Login(ctx, "ali@example.com", "wrongpass", false)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Current(ctx, reg.AuthToken)
	assert.ErrorIs(t, err, domain.ErrNotFound, "no session may exist after a failed login")
}

func TestRememberSelectsDurableStore(t *testing.T) {
	users := repository.NewMemoryUserStore()
	durable := repository.NewMemorySessionStore()
	ephemeral := repository.NewMemorySessionStore()
	tokens := NewTokenManager("test-secret", time.Hour)
	svc := NewService(users, durable, ephemeral, tokens, zap.NewNop())
	ctx := context.Background()

	remembered, err := svc.Register(ctx, "Ali", "ali@example.com", "secret1", true)
	require.NoError(t, err)
	_, err = durable.GetSession(ctx, remembered.AuthToken)
	assert.NoError(t, err)
	_, err = ephemeral.GetSession(ctx, remembered.AuthToken)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	forgotten, err := svc.Login(ctx, "ali@example.com", "secret1", false)
	require.NoError(t, err)
	_, err = ephemeral.GetSession(ctx, forgotten.AuthToken)
	assert.NoError(t, err)
}

func TestLogoutClearsBothStores(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, "Ali", "ali@example.com", "secret1", true)
	require.NoError(t, err)

	_, err = svc.Current(ctx, sess.AuthToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.AuthToken))

	_, err = svc.Current(ctx, sess.AuthToken)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Logout of an already-absent session stays a no-op.
	assert.NoError(t, svc.Logout(ctx, sess.AuthToken))
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	user := domain.User{ID: "u1", Name: "Ali", Email: "ali@example.com"}

	token, err := tm.Generate(user)
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "Ali", claims.Name)
	assert.Equal(t, "ali@example.com", claims.Email)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, err := tm.Generate(domain.User{ID: "u1"})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}
