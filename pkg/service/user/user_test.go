package user_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	usersvc "github.com/amirasaad/finance/pkg/service/user"
	"github.com/amirasaad/finance/pkg/testutils"
	"github.com/amirasaad/finance/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Run()
}

func newFixture(t *testing.T) *usersvc.Service {
	t.Helper()
	return usersvc.NewService(config.Deps{
		Uow:    testutils.NewUoW(testutils.NewStore()),
		Logger: slog.Default(),
		Config: &config.App{},
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()
	svc := newFixture(t)

	u, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "correct horse battery", u.PasswordHash, "the password is never stored in the clear")
	assert.True(t, utils.CheckPasswordHash("correct horse battery", u.PasswordHash))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc := newFixture(t)

	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "password-one")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Eve", "ada@example.com", "password-two")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyInUse)
}

func TestRegister_InvalidEmail(t *testing.T) {
	t.Parallel()
	svc := newFixture(t)
	_, err := svc.Register(context.Background(), "Ada", "not-an-email", "password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()
	svc := newFixture(t)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
