package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pedrohqb/ecommerce-backend/internal/adapters/transport/http/dto"
	"github.com/pedrohqb/ecommerce-backend/internal/app/auth/token"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/model"
	"go.uber.org/zap"
)

type stubAuthSvc struct {
	loginErr   error
	confirmErr error
}

func (s stubAuthSvc) Register(ctx context.Context, d dto.RegisterDTO) (int64, error) {
	if d.Email == "taken@example.com" {
		return 0, apperrors.ErrAlreadyExists
	}
	return 1, nil
}

func (s stubAuthSvc) Login(ctx context.Context, d dto.LoginDTO) (model.Session, error) {
	if s.loginErr != nil {
		return model.Session{}, s.loginErr
	}
	return model.Session{Token: "tok", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s stubAuthSvc) RequestCode(ctx context.Context, d dto.RequestCodeDTO) error {
	return nil
}

func (s stubAuthSvc) ConfirmCode(ctx context.Context, d dto.ConfirmCodeDTO) error {
	return s.confirmErr
}

type stubUserSvc struct{}

func (stubUserSvc) GetByID(ctx context.Context, id int64) (model.Profile, error) {
	return model.Profile{ID: id, Username: "ana", Email: "ana@example.com"}, nil
}
func (stubUserSvc) List(ctx context.Context) ([]model.Profile, error) { return nil, nil }
func (stubUserSvc) UpdateName(ctx context.Context, userID int64, d dto.UpdateNameDTO) error {
	return nil
}
func (stubUserSvc) UpdatePassword(ctx context.Context, userID int64, d dto.UpdatePasswordDTO) error {
	return nil
}
func (stubUserSvc) RequestEmailChange(ctx context.Context, userID int64, d dto.EmailChangeRequestDTO) error {
	return nil
}
func (stubUserSvc) ConfirmEmailChange(ctx context.Context, userID int64, d dto.EmailChangeConfirmDTO) error {
	return nil
}
func (stubUserSvc) ListAddresses(ctx context.Context, userID int64) ([]model.Address, error) {
	return nil, nil
}
func (stubUserSvc) GetAddress(ctx context.Context, userID, addressID int64) (model.Address, error) {
	return model.Address{}, apperrors.ErrNotFound
}
func (stubUserSvc) CreateAddress(ctx context.Context, userID int64, d dto.AddressDTO) (int64, error) {
	return 1, nil
}
func (stubUserSvc) UpdateAddress(ctx context.Context, userID, addressID int64, d dto.AddressDTO) error {
	return nil
}
func (stubUserSvc) DeleteAddress(ctx context.Context, userID, addressID int64) error { return nil }

func newRouter(auth stubAuthSvc) (*gin.Engine, token.Issuer) {
	gin.SetMode(gin.TestMode)
	iss := token.NewIssuer("test-secret", time.Hour, "test")
	h := NewHandler(auth, stubUserSvc{}, iss, zap.NewNop())
	r := gin.New()
	h.RegisterRoutes(r)
	return r, iss
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_LoginSuccess(t *testing.T) {
	r, _ := newRouter(stubAuthSvc{})
	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "a@b.co", "password": "x"}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestHandler_LoginInvalidCredentials(t *testing.T) {
	r, _ := newRouter(stubAuthSvc{loginErr: apperrors.ErrInvalidCredentials})
	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "a@b.co", "password": "x"}, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestHandler_RegisterConflict(t *testing.T) {
	r, _ := newRouter(stubAuthSvc{})
	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "ana", "email": "taken@example.com", "phone": "1",
		"password": "NewPass123", "password_confirm": "NewPass123",
	}, nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("want 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandler_ConfirmCodeInvalid(t *testing.T) {
	r, _ := newRouter(stubAuthSvc{confirmErr: apperrors.ErrCodeInvalidOrExpired})
	w := doJSON(t, r, http.MethodPost, "/auth/reset", gin.H{
		"email": "a@b.co", "purpose": "senha", "code": "000000", "new_value": "NewPass123",
	}, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "invalid or expired code" {
		t.Fatalf("message must be the stable one, got %q", resp.Message)
	}
}

func TestHandler_ProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newRouter(stubAuthSvc{})

	w := doJSON(t, r, http.MethodGet, "/users/me", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: want 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/users/me", nil, map[string]string{"Authorization": "Bearer garbage"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: want 401, got %d", w.Code)
	}
}

func TestHandler_MeWithValidToken(t *testing.T) {
	r, iss := newRouter(stubAuthSvc{})
	raw, _, err := iss.Generate(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/users/me", nil, map[string]string{"Authorization": "Bearer " + raw})
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		User model.Profile `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.ID != 7 {
		t.Fatalf("want the authenticated id, got %d", resp.User.ID)
	}
}

func TestHandler_AddressNotFound(t *testing.T) {
	r, iss := newRouter(stubAuthSvc{})
	raw, _, _ := iss.Generate(7)

	w := doJSON(t, r, http.MethodGet, "/users/me/addresses/42", nil, map[string]string{"Authorization": "Bearer " + raw})
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}
