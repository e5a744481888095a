package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skycopilot/backend/internal/config"
	"github.com/skycopilot/backend/internal/model"
)

var errNoRows = errors.New("no rows")

type fakeAuthRepo struct {
	users    map[string]*model.User
	tokens   map[string]*model.RefreshTokenRecord
	nextID   int64
	tokenSeq int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		users:  map[string]*model.User{},
		tokens: map[string]*model.RefreshTokenRecord{},
	}
}

func (f *fakeAuthRepo) CreateUser(ctx context.Context, loginID, passwordHash string) (*model.User, error) {
	if _, ok := f.users[loginID]; ok {
		return nil, errors.New("duplicate key value violates unique constraint")
	}
	f.nextID++
	user := &model.User{ID: f.nextID, LoginID: loginID, PasswordHash: passwordHash}
	f.users[loginID] = user
	return user, nil
}

func (f *fakeAuthRepo) GetUserByLoginID(ctx context.Context, loginID string) (*model.User, error) {
	if user, ok := f.users[loginID]; ok {
		return user, nil
	}
	return nil, errNoRows
}

func (f *fakeAuthRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errNoRows
}

func (f *fakeAuthRepo) InsertRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	f.tokenSeq++
	f.tokens[tokenHash] = &model.RefreshTokenRecord{ID: f.tokenSeq, UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeAuthRepo) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshTokenRecord, error) {
	if record, ok := f.tokens[tokenHash]; ok {
		return record, nil
	}
	return nil, errNoRows
}

func (f *fakeAuthRepo) RotateRefreshToken(ctx context.Context, oldID, userID int64, newHash string, expiresAt time.Time) error {
	now := time.Now()
	for _, record := range f.tokens {
		if record.ID == oldID {
			record.RevokedAt = &now
		}
	}
	return f.InsertRefreshToken(ctx, userID, newHash, expiresAt)
}

func (f *fakeAuthRepo) RevokeRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	if record, ok := f.tokens[tokenHash]; ok {
		now := time.Now()
		record.RevokedAt = &now
	}
	return nil
}

func (f *fakeAuthRepo) IsNoRows(err error) bool { return errors.Is(err, errNoRows) }

func (f *fakeAuthRepo) IsUniqueViolation(err error) bool {
	return err != nil && err.Error() == "duplicate key value violates unique constraint"
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "test-secret",
		JWTAccessTTL:  "15m",
		JWTRefreshTTL: "720h",
		AllowSignup:   "true",
		CookieSecure:  "false",
	}
}

func TestAuthServiceRequiresSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = ""
	if _, err := NewAuthService(newFakeAuthRepo(), cfg); !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc, err := NewAuthService(newFakeAuthRepo(), testAuthConfig())
	if err != nil {
		t.Fatalf("auth service init failed: %v", err)
	}

	access, refresh, expiresIn, err := svc.Register(context.Background(), "pilot1", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if access == "" || refresh == "" || expiresIn != int64((15*time.Minute).Seconds()) {
		t.Fatalf("unexpected token issue: expiresIn=%d", expiresIn)
	}

	user, err := svc.ParseAccessToken(access)
	if err != nil {
		t.Fatalf("access token did not verify: %v", err)
	}
	if user.LoginID != "pilot1" {
		t.Fatalf("unexpected claims: %+v", user)
	}

	if _, _, _, err := svc.Login(context.Background(), "pilot1", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "pilot1", "wrong-password"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad password, got %v", err)
	}
}

func TestRegisterConflictAndValidation(t *testing.T) {
	svc, _ := NewAuthService(newFakeAuthRepo(), testAuthConfig())

	if _, _, _, err := svc.Register(context.Background(), "pilot1", "password123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, _, err := svc.Register(context.Background(), "pilot1", "password123"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, _, _, err := svc.Register(context.Background(), "ab", "password123"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short login id, got %v", err)
	}
	if _, _, _, err := svc.Register(context.Background(), "pilot2", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	svc, _ := NewAuthService(newFakeAuthRepo(), testAuthConfig())

	_, refresh, _, err := svc.Register(context.Background(), "pilot1", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, rotated, _, err := svc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated == refresh {
		t.Fatalf("refresh token must rotate")
	}

	// 회전된 이전 토큰은 재사용할 수 없다
	if _, _, _, err := svc.Refresh(context.Background(), refresh); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for reused token, got %v", err)
	}
	if _, _, _, err := svc.Refresh(context.Background(), rotated); err != nil {
		t.Fatalf("rotated token must still work: %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := NewAuthService(newFakeAuthRepo(), testAuthConfig())

	_, refresh, _, err := svc.Register(context.Background(), "pilot1", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.Logout(context.Background(), refresh); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, _, _, err := svc.Refresh(context.Background(), refresh); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc, _ := NewAuthService(newFakeAuthRepo(), testAuthConfig())
	if _, err := svc.ParseAccessToken("not.a.jwt"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
