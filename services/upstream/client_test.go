package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carepro/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPClient(server.URL, 5*time.Second, zap.NewNop())
}

func TestLogin_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Account/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "carer@example.com", req.Email)

		json.NewEncoder(w).Encode(map[string]any{
			"succeeded": true,
			"message":   "Welcome back",
			"data": map[string]any{
				"accessToken":      "acc",
				"refreshToken":     "ref",
				"id":               "p-1",
				"email":            "carer@example.com",
				"phoneNumber":      "555-0100",
				"role":             "ServiceProvider",
				"isEmailConfirmed": true,
				"providerStatus":   4,
			},
		})
	})

	data, err := client.Login(context.Background(), LoginRequest{
		Email: "carer@example.com", Password: "pw", PhoneNumber: "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "acc", data.AccessToken)

	record := data.SessionRecord()
	assert.Equal(t, models.RoleProvider, record.UserRole)
	assert.Equal(t, models.StatusRejected, record.ProviderStatus)
	assert.False(t, record.Approved())
}

func TestLogin_RejectionSurfacesUpstreamMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"succeeded": false,
			"message":   "Invalid credentials",
		})
	})

	_, err := client.Login(context.Background(), LoginRequest{Email: "x@example.com"})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected APIError, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestLogin_SucceededFalseWithOKStatusIsStillRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"succeeded": false,
			"message":   "Account locked",
		})
	})

	_, err := client.Login(context.Background(), LoginRequest{Email: "x@example.com"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Account locked", apiErr.Message)
}

func TestSessionRecord_DefaultsProviderStatusToPending(t *testing.T) {
	data := &LoginData{ID: "p-2", Email: "p@example.com", Role: "provider"}
	record := data.SessionRecord()
	assert.Equal(t, models.StatusPending, record.ProviderStatus)

	// Non-providers carry no provider status at all.
	data = &LoginData{ID: "u-1", Email: "u@example.com", Role: "User", ProviderStatus: 3}
	record = data.SessionRecord()
	assert.Equal(t, models.RoleUser, record.UserRole)
	assert.Equal(t, models.ProviderStatus(0), record.ProviderStatus)
	assert.False(t, record.Approved())
}

func TestVerifyOTP(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Account/verify-otp", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload["otp"] != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"succeeded": false, "message": "Invalid OTP"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"succeeded": true})
	})

	assert.NoError(t, client.VerifyOTP(context.Background(), "u-1", "123456"))
	assert.Error(t, client.VerifyOTP(context.Background(), "u-1", "000000"))
}

func TestLogout_SendsBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"succeeded": true})
	})

	require.NoError(t, client.Logout(context.Background(), "tok-1"))
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestRegister_PicksIDFieldByRole(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Account/register-user":
			json.NewEncoder(w).Encode(map[string]any{
				"succeeded": true,
				"data":      map[string]any{"id": "new-user"},
			})
		case "/Account/register-service-provider":
			json.NewEncoder(w).Encode(map[string]any{
				"succeeded": true,
				"data":      map[string]any{"userId": "new-provider"},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	id, err := client.Register(context.Background(), models.RoleUser, "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Equal(t, "new-user", id)

	id, err = client.Register(context.Background(), models.RoleProvider, "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Equal(t, "new-provider", id)
}

func TestProfile_RoleSelectsEndpointAndNameAssembly(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/User/profile":
			json.NewEncoder(w).Encode(map[string]any{
				"succeeded": true,
				"data":      map[string]any{"id": "u-1", "firstName": "Amina", "lastName": "Hassan"},
			})
		case "/Provider/profile":
			json.NewEncoder(w).Encode(map[string]any{
				"succeeded": true,
				"data":      map[string]any{"id": "p-1", "fullName": "Omar Farouk", "profilePicture": "https://cdn.example.com/p1.png"},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	prof, err := client.Profile(context.Background(), models.RoleUser, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Amina Hassan", prof.Name)

	prof, err = client.Profile(context.Background(), models.RoleProvider, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Omar Farouk", prof.Name)
	assert.Equal(t, "https://cdn.example.com/p1.png", prof.Avatar)
}

func TestActiveCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Category/active", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"succeeded": true,
			"data": []map[string]any{
				{"id": "c-1", "name": "Elder Care", "isActive": true},
				{"id": "c-2", "name": "Child Care", "isActive": true},
			},
		})
	})

	categories, err := client.ActiveCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Elder Care", categories[0].Name)
}
