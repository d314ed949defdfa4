package auth

import (
	"context"
	"io"
	"strings"
	"testing"

	pkgauth "github.com/fixnest/fixnest-backend/pkg/auth"
	"github.com/fixnest/fixnest-backend/pkg/auth/session"
	"github.com/fixnest/fixnest-backend/pkg/config"
	"github.com/fixnest/fixnest-backend/pkg/db/models"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/logger"
	"github.com/fixnest/fixnest-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeAdmins struct {
	byEmail map[string]*models.AdminUser
	byID    map[uuid.UUID]*models.AdminUser
}

func (f *fakeAdmins) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	admin, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return admin, nil
}

func (f *fakeAdmins) FindByID(_ context.Context, id uuid.UUID) (*models.AdminUser, error) {
	admin, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return admin, nil
}

type fakeSessions struct {
	refreshByID map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{refreshByID: map[string]string{}}
}

func (f *fakeSessions) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	f.refreshByID[accessID] = token
	return token, nil
}

func (f *fakeSessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := f.refreshByID[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.refreshByID, oldAccessID)
	newID := uuid.NewString()
	token := "refresh-" + newID
	f.refreshByID[newID] = token
	return newID, token, nil
}

func (f *fakeSessions) Revoke(_ context.Context, accessID string) error {
	delete(f.refreshByID, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "fixnest-test",
		ExpirationMinutes: 15,
		SessionTTLMinutes: 720,
	}
}

func testHarness(t *testing.T, admins ...*models.AdminUser) (Service, *fakeSessions) {
	t.Helper()
	repo := &fakeAdmins{byEmail: map[string]*models.AdminUser{}, byID: map[uuid.UUID]*models.AdminUser{}}
	for _, admin := range admins {
		repo.byEmail[admin.Email] = admin
		repo.byID[admin.ID] = admin
	}
	sessions := newFakeSessions()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, sessions, testJWTConfig(), logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, sessions
}

func testAdmin(t *testing.T, email, password string, active bool) *models.AdminUser {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     active,
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	admin := testAdmin(t, "ops@fixnest.in", "correct horse", true)
	svc, sessions := testHarness(t, admin)

	pair, got, err := svc.Login(context.Background(), "ops@fixnest.in", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != admin.ID {
		t.Fatal("expected matching admin")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Email != admin.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if _, ok := sessions.refreshByID[claims.ID]; !ok {
		t.Fatal("expected a session keyed by the jti")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := testHarness(t, testAdmin(t, "ops@fixnest.in", "correct horse", true))

	_, _, err := svc.Login(context.Background(), "ops@fixnest.in", "battery staple")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, _ := testHarness(t)

	_, _, err := svc.Login(context.Background(), "nobody@fixnest.in", "whatever")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	svc, _ := testHarness(t, testAdmin(t, "ops@fixnest.in", "correct horse", false))

	_, _, err := svc.Login(context.Background(), "ops@fixnest.in", "correct horse")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	admin := testAdmin(t, "ops@fixnest.in", "correct horse", true)
	svc, sessions := testHarness(t, admin)
	ctx := context.Background()

	pair, _, err := svc.Login(ctx, "ops@fixnest.in", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	fresh, err := svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if fresh.AccessToken == pair.AccessToken {
		t.Fatal("expected a new access token")
	}

	// The old refresh token is burned.
	if _, err := svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken); err == nil {
		t.Fatal("expected stale refresh token to be rejected")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), fresh.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if _, ok := sessions.refreshByID[claims.ID]; !ok {
		t.Fatal("expected the rotated session to exist")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	admin := testAdmin(t, "ops@fixnest.in", "correct horse", true)
	svc, sessions := testHarness(t, admin)
	ctx := context.Background()

	pair, _, err := svc.Login(ctx, "ops@fixnest.in", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if err := svc.Logout(ctx, claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := sessions.refreshByID[claims.ID]; ok {
		t.Fatal("expected session to be revoked")
	}
}
