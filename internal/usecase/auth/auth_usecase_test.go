package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fixture struct {
	uc       *AuthUseCase
	profiles *memory.ProfileRepository
	sessions *memory.SessionRepository
}

func newFixture() *fixture {
	profiles := memory.NewProfileRepository(nil)
	sessions := memory.NewSessionRepository()
	uc := NewAuthUseCase(memory.NewUserRepository(), profiles, sessions, testSecret, "test", time.Hour)
	return &fixture{uc: uc, profiles: profiles, sessions: sessions}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	reg, err := f.uc.Register(ctx, &RegisterRequest{Email: "  Alice@Example.com ", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.NotEqual(t, "password1", reg.User.PasswordHash)

	userID, err := f.uc.VerifyToken(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)

	login, err := f.uc.Login(ctx, &LoginRequest{Email: "ALICE@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotEqual(t, reg.Token, login.Token)
}

func TestRegisterErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.uc.Register(ctx, &RegisterRequest{Email: "bob@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = f.uc.Register(ctx, &RegisterRequest{Email: "BOB@example.com", Password: "password2"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	_, err = f.uc.Register(ctx, &RegisterRequest{Email: "not-an-email", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Register(ctx, &RegisterRequest{Email: "carol@example.com", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.uc.Register(ctx, &RegisterRequest{Email: "dan@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = f.uc.Login(ctx, &LoginRequest{Email: "dan@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.uc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	reg, err := f.uc.Register(ctx, &RegisterRequest{Email: "erin@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(ctx, reg.Token))

	_, err = f.uc.VerifyToken(ctx, reg.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestVerifyTokenRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	reg, err := f.uc.Register(ctx, &RegisterRequest{Email: "fay@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = f.uc.VerifyToken(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	tampered := reg.Token[:len(reg.Token)-2] + "xx"
	_, err = f.uc.VerifyToken(ctx, tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	other := NewAuthUseCase(memory.NewUserRepository(), f.profiles, f.sessions, strings.Repeat("z", 32), "test", time.Hour)
	_, err = other.VerifyToken(ctx, reg.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	f.uc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = f.uc.VerifyToken(ctx, reg.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestMeReportsOnboarding(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	reg, err := f.uc.Register(ctx, &RegisterRequest{Email: "gus@example.com", Password: "password1"})
	require.NoError(t, err)

	me, err := f.uc.Me(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.False(t, me.OnboardingComplete)
	assert.Equal(t, "gus@example.com", me.Email)

	require.NoError(t, f.profiles.Create(ctx, &domain.Profile{ID: reg.User.ID, Name: "Gus"}, nil))

	me, err = f.uc.Me(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.True(t, me.OnboardingComplete)

	_, err = f.uc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
