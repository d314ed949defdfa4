package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/fixnest/fixnest-backend/internal/auth"
	bookingsvc "github.com/fixnest/fixnest-backend/internal/booking"
	cartsvc "github.com/fixnest/fixnest-backend/internal/cart"
	"github.com/fixnest/fixnest-backend/internal/catalog"
	reviewsvc "github.com/fixnest/fixnest-backend/internal/reviews"
	pkgauth "github.com/fixnest/fixnest-backend/pkg/auth"
	"github.com/fixnest/fixnest-backend/pkg/auth/session"
	"github.com/fixnest/fixnest-backend/pkg/config"
	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/logger"
	"github.com/fixnest/fixnest-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessions struct{}

func (stubSessions) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, email, password string) (*authsvc.TokenPair, *models.AdminUser, error) {
	return nil, nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Refresh(ctx context.Context, staleAccessToken, refreshToken string) (*authsvc.TokenPair, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListServices(ctx context.Context) ([]catalog.ServiceSummaryDTO, error) {
	return []catalog.ServiceSummaryDTO{}, nil
}

func (stubCatalogService) GetServicePage(ctx context.Context, slug string) (*catalog.ServicePageDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) ListAdminServices(ctx context.Context) ([]catalog.ServiceDetailDTO, error) {
	return []catalog.ServiceDetailDTO{}, nil
}

func (stubCatalogService) GetAdminService(ctx context.Context, id uuid.UUID) (*catalog.ServiceDetailDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) CreateService(ctx context.Context, input catalog.CreateServiceInput) (*catalog.ServiceDetailDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateService(ctx context.Context, id uuid.UUID, input catalog.UpdateServiceInput) (*catalog.ServiceDetailDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) CreateSubService(ctx context.Context, serviceID uuid.UUID, input catalog.CreateSubServiceInput) (*catalog.SubServiceDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateSubService(ctx context.Context, serviceID, subServiceID uuid.UUID, input catalog.UpdateSubServiceInput) (*catalog.SubServiceDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteSubService(ctx context.Context, serviceID, subServiceID uuid.UUID) error {
	panic("unimplemented")
}

type stubReviewsService struct{}

func (stubReviewsService) ListForService(ctx context.Context, serviceID uuid.UUID, params pagination.Params) ([]models.Review, string, error) {
	return []models.Review{}, "", nil
}

func (stubReviewsService) ListRecentForService(ctx context.Context, serviceID uuid.UUID, limit int) ([]models.Review, error) {
	return nil, nil
}

func (stubReviewsService) AverageForService(ctx context.Context, serviceID uuid.UUID) (string, error) {
	return "0.00", nil
}

func (stubReviewsService) ListAll(ctx context.Context, params pagination.Params) ([]models.Review, string, error) {
	return []models.Review{}, "", nil
}

func (stubReviewsService) CreateReview(ctx context.Context, input reviewsvc.CreateReviewInput) (*models.Review, error) {
	panic("unimplemented")
}

func (stubReviewsService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, sess string) (cartsvc.State, error) {
	return cartsvc.State{}, nil
}

func (stubCartService) Add(ctx context.Context, sess string, subServiceID uuid.UUID) (cartsvc.State, error) {
	panic("unimplemented")
}

func (stubCartService) UpdateQuantity(ctx context.Context, sess string, subServiceID uuid.UUID, quantity int) (cartsvc.State, error) {
	panic("unimplemented")
}

func (stubCartService) Remove(ctx context.Context, sess string, subServiceID uuid.UUID) (cartsvc.State, error) {
	panic("unimplemented")
}

func (stubCartService) Clear(ctx context.Context, sess string) error {
	return nil
}

type stubBookingService struct{}

func (stubBookingService) State(ctx context.Context, sess string) (bookingsvc.Draft, error) {
	return bookingsvc.NewDraft(), nil
}

func (stubBookingService) Advance(ctx context.Context, sess string, input bookingsvc.AdvanceInput) (bookingsvc.Draft, error) {
	panic("unimplemented")
}

func (stubBookingService) Back(ctx context.Context, sess string) (bookingsvc.Draft, error) {
	panic("unimplemented")
}

func (stubBookingService) Close(ctx context.Context, sess string) (bookingsvc.Draft, error) {
	panic("unimplemented")
}

func (stubBookingService) Slots(date time.Time) []bookingsvc.Slot {
	return bookingsvc.SlotsFor(date, time.Now())
}

func (stubBookingService) ListBookings(ctx context.Context, params pagination.Params) ([]models.Booking, string, error) {
	return []models.Booking{}, "", nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Output: io.Discard})
	return NewRouter(Deps{
		Config:        cfg,
		Logger:        logg,
		Database:      stubPinger{},
		Cache:         stubPinger{},
		Sessions:      stubSessions{},
		Auth:          stubAuthService{},
		Catalog:       stubCatalogService{},
		Reviews:       stubReviewsService{},
		Blogs:         nil,
		LocationPages: nil,
		Cart:          stubCartService{},
		Booking:       stubBookingService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		AdminID: uuid.New(),
		Email:   "ops@fixnest.in",
		JTI:     session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if env := resp.Header().Get("X-FixNest-Env"); env != "test" {
		t.Fatalf("expected env header test got %q", env)
	}
}

func TestPublicServicesList(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCartIssuesSessionToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	token := resp.Header().Get("X-Cart-Session")
	if uuid.Validate(token) != nil {
		t.Fatalf("expected a uuid session token got %q", token)
	}

	// A returning visitor keeps their token.
	again := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	again.Header.Set("X-Cart-Session", token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, again)
	if got := resp.Header().Get("X-Cart-Session"); got != token {
		t.Fatalf("expected echoed token %q got %q", token, got)
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/bookings", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestAdminReviewsList(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/reviews", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAdminLogoutRevokesSession(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
