package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"carepro/handlers"
	"carepro/models"
	"carepro/routes"
	"carepro/services/navigation"
	"carepro/services/payment"
	"carepro/services/session"
	"carepro/services/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUpstream is a scriptable upstream.Client.
type fakeUpstream struct {
	loginData *upstream.LoginData
	loginErr  error
	otpErr    error
	logoutErr error
}

func (f *fakeUpstream) Login(ctx context.Context, req upstream.LoginRequest) (*upstream.LoginData, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginData, nil
}

func (f *fakeUpstream) VerifyOTP(ctx context.Context, userID, otp string) error {
	return f.otpErr
}

func (f *fakeUpstream) Logout(ctx context.Context, accessToken string) error {
	return f.logoutErr
}

func (f *fakeUpstream) Register(ctx context.Context, role models.Role, contentType string, body io.Reader) (string, error) {
	return "new-id", nil
}

func (f *fakeUpstream) Profile(ctx context.Context, role models.Role, accessToken string) (*models.Profile, error) {
	return &models.Profile{UserID: "u-1", Name: "Amina Hassan"}, nil
}

func (f *fakeUpstream) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{{ID: "c-1", Name: "Elder Care", IsActive: true}}, nil
}

type fakeRevoker struct{ err error }

func (f *fakeRevoker) EnqueueRevoke(ctx context.Context, accessToken string) error { return f.err }

type fakePayment struct{}

func (fakePayment) ConfirmCheckout(ctx context.Context, sessionID string) (*payment.Confirmation, error) {
	return &payment.Confirmation{SessionID: sessionID, Paid: true, AmountTotal: 2500, Currency: "usd"}, nil
}

type testEnv struct {
	router   *gin.Engine
	store    *session.MemoryStore
	upstream *fakeUpstream
	revoker  *fakeRevoker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore()
	fake := &fakeUpstream{}
	revoker := &fakeRevoker{}
	registry := navigation.NewRegistry(store, revoker, zap.NewNop())

	navigationHandler := handlers.NewNavigationHandler(registry)
	accountHandler := handlers.NewAccountHandler(registry, fake)
	paymentHandler := handlers.NewPaymentRedirectHandler(fakePayment{})
	categoryHandler := handlers.NewCategoryHandler(fake)

	bundle := &handlers.HandlerBundle{
		SessionStore: store,

		StartFlowHandler: navigationHandler.StartFlowHandler,
		BootstrapHandler: navigationHandler.BootstrapHandler,
		NavigateHandler:  navigationHandler.NavigateHandler,

		LoginHandler:     accountHandler.LoginHandler,
		RegisterHandler:  accountHandler.RegisterHandler,
		VerifyOTPHandler: accountHandler.VerifyOTPHandler,
		LogoutHandler:    accountHandler.LogoutHandler,

		GetProfileHandler: func(c *gin.Context) { c.Status(http.StatusOK) },

		ActiveCategoriesHandler: categoryHandler.ActiveCategoriesHandler,

		PaymentSuccessHandler: paymentHandler.SuccessHandler,
		PaymentCancelHandler:  paymentHandler.CancelHandler,
	}

	router := gin.New()
	routes.RegisterRoutes(router, bundle)
	return &testEnv{router: router, store: store, upstream: fake, revoker: revoker}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func (e *testEnv) startFlow(t *testing.T) string {
	t.Helper()
	w, resp := e.do(t, http.MethodPost, "/api/flow/start", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := resp["flowToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestStartFlowAndBootstrapEmpty(t *testing.T) {
	env := newTestEnv(t)
	token := env.startFlow(t)

	w, resp := env.do(t, http.MethodPost, "/api/navigation/bootstrap", token,
		map[string]string{"url": "https://app.example.com/"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "landing", resp["screen"])
}

func TestBootstrapRequiresFlowToken(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/navigation/bootstrap", "",
		map[string]string{"url": "https://app.example.com/"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(t, http.MethodPost, "/api/navigation/bootstrap", "not-a-jwt",
		map[string]string{"url": "https://app.example.com/"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRoutesAndPersists(t *testing.T) {
	env := newTestEnv(t)
	env.upstream.loginData = &upstream.LoginData{
		AccessToken:  "acc",
		RefreshToken: "ref",
		ID:           "p-1",
		Email:        "carer@example.com",
		Role:         "serviceprovider",
		// Approved.
		ProviderStatus: 3,
	}
	token := env.startFlow(t)

	w, resp := env.do(t, http.MethodPost, "/api/account/login", token,
		map[string]string{"email": "carer@example.com", "password": "pw", "phoneNumber": "555"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "provider-dashboard", resp["screen"])

	user, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, user["approved"])

	// A reload recomputes the same screen from storage.
	w, resp = env.do(t, http.MethodPost, "/api/navigation/bootstrap", token,
		map[string]string{"url": "https://app.example.com/"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "provider-dashboard", resp["screen"])
}

func TestLoginFailureWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	env.upstream.loginErr = &upstream.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	token := env.startFlow(t)

	w, resp := env.do(t, http.MethodPost, "/api/account/login", token,
		map[string]string{"email": "x@example.com", "password": "bad", "phoneNumber": "555"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", resp["message"])

	// Screen did not advance and no session was stored.
	w, resp = env.do(t, http.MethodPost, "/api/navigation/bootstrap", token,
		map[string]string{"url": "https://app.example.com/"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "landing", resp["screen"])
}

func TestLoginUpstreamOutage(t *testing.T) {
	env := newTestEnv(t)
	env.upstream.loginErr = errors.New("connection refused")
	token := env.startFlow(t)

	w, _ := env.do(t, http.MethodPost, "/api/account/login", token,
		map[string]string{"email": "x@example.com", "password": "pw", "phoneNumber": "555"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestVerifyOTPWithoutPendingRegistration(t *testing.T) {
	env := newTestEnv(t)
	token := env.startFlow(t)

	w, resp := env.do(t, http.MethodPost, "/api/account/verify-otp", token,
		map[string]string{"otp": "123456"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "register", resp["screen"])
}

func TestNavigateVerifyOTPWithoutContext(t *testing.T) {
	env := newTestEnv(t)
	token := env.startFlow(t)

	w, resp := env.do(t, http.MethodPost, "/api/navigation/navigate", token,
		map[string]any{"screen": "verify-otp"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "register", resp["screen"])
}

func TestNavigateUnknownScreen(t *testing.T) {
	env := newTestEnv(t)
	token := env.startFlow(t)

	w, _ := env.do(t, http.MethodPost, "/api/navigation/navigate", token,
		map[string]any{"screen": "backstage"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsSessionEvenWhenRevocationFails(t *testing.T) {
	env := newTestEnv(t)
	env.upstream.loginData = &upstream.LoginData{
		AccessToken: "acc", ID: "u-1", Email: "u@example.com", Role: "user",
	}
	env.revoker.err = errors.New("queue unavailable")
	token := env.startFlow(t)

	w, _ := env.do(t, http.MethodPost, "/api/account/login", token,
		map[string]string{"email": "u@example.com", "password": "pw", "phoneNumber": "555"})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := env.do(t, http.MethodPost, "/api/account/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "landing", resp["screen"])

	w, resp = env.do(t, http.MethodPost, "/api/navigation/bootstrap", token,
		map[string]string{"url": "https://app.example.com/"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "landing", resp["screen"])
}

func TestPaymentRedirectEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodGet, "/payments/success?session_id=cs_123", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cs_123", resp["sessionId"])
	assert.Equal(t, true, resp["paid"])

	w, resp = env.do(t, http.MethodGet, "/payments/cancel?request_id=req-7", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-7", resp["requestId"])

	w, _ = env.do(t, http.MethodGet, "/payments/success", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActiveCategories(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodGet, "/api/categories/active", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	categories, ok := resp["categories"].([]any)
	require.True(t, ok)
	assert.Len(t, categories, 1)
}
