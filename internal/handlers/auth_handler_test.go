package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
	"spendly/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn        func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn    func(email string) (*models.User, error)
	getUserByIDFn       func(id uint) (*models.User, error)
	verifyPasswordFn    func(user *models.User, password string) bool
	updatePasswordFn    func(userID uint, newPassword string) error
	listActiveUserIDsFn func() ([]uint, error)
}

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) UpdatePassword(userID uint, newPassword string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(userID, newPassword)
	}
	return nil
}

func (m *mockUserService) ListActiveUserIDs() ([]uint, error) {
	if m.listActiveUserIDsFn != nil {
		return m.listActiveUserIDsFn()
	}
	return nil, nil
}

type mockResetService struct {
	requestResetFn  func(email string, now time.Time) (string, error)
	resetPasswordFn func(token, newPassword string, now time.Time) error
}

func (m *mockResetService) RequestReset(email string, now time.Time) (string, error) {
	if m.requestResetFn != nil {
		return m.requestResetFn(email, now)
	}
	return "", nil
}

func (m *mockResetService) ResetPassword(token, newPassword string, now time.Time) error {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(token, newPassword, now)
	}
	return nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/forgot-password", handler.ForgotPassword)
	r.POST("/auth/reset-password", handler.ResetPassword)
	r.GET("/profile", injectUserID(1), handler.GetProfile)
	return r
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 with token on success", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(email, _, firstName, lastName string) (*models.User, error) {
				return &models.User{
					Base:      models.Base{ID: 1},
					Email:     email,
					FirstName: firstName,
					LastName:  lastName,
				}, nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockResetService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"test@example.com","password":"password123","firstName":"John","lastName":"Doe"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == nil || result["token"] == "" {
			t.Error("expected non-empty token")
		}
		user := result["user"].(map[string]interface{})
		if user["email"] != "test@example.com" {
			t.Errorf("expected email test@example.com, got %v", user["email"])
		}
		if user["firstName"] != "John" {
			t.Errorf("expected firstName John, got %v", user["firstName"])
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"password":"password123","firstName":"John","lastName":"Doe"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"test@example.com","password":"short","firstName":"John","lastName":"Doe"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		handler := NewAuthHandler(userSvc, &mockResetService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"test@example.com","password":"password123","firstName":"John","lastName":"Doe"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with token on success", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByEmailFn: func(email string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: 1}, Email: email}, nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockResetService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login",
			`{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == nil || result["token"] == "" {
			t.Error("expected non-empty token")
		}
	})

	t.Run("returns 401 on unknown email", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByEmailFn: func(string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(userSvc, &mockResetService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login",
			`{"email":"nobody@example.com","password":"password123"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 401 on wrong password", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByEmailFn: func(email string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: 1}, Email: email}, nil
			},
			verifyPasswordFn: func(*models.User, string) bool { return false },
		}
		handler := NewAuthHandler(userSvc, &mockResetService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login",
			`{"email":"test@example.com","password":"wrong-password"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("returns user profile", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id uint) (*models.User, error) {
				return &models.User{
					Base:      models.Base{ID: id},
					Email:     "test@example.com",
					FirstName: "John",
					LastName:  "Doe",
				}, nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockResetService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["email"] != "test@example.com" {
			t.Errorf("expected email test@example.com, got %v", user["email"])
		}
	})

	t.Run("returns 401 without user in context", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{})
		r := gin.New()
		r.GET("/profile", handler.GetProfile)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	t.Run("returns generic message for known email", func(t *testing.T) {
		resetSvc := &mockResetService{
			requestResetFn: func(email string, _ time.Time) (string, error) {
				return "some-reset-token", nil
			},
		}
		handler := NewAuthHandler(&mockUserService{}, resetSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/forgot-password", `{"email":"test@example.com"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["message"] == nil {
			t.Error("expected message in response")
		}
		if _, exposed := result["token"]; exposed {
			t.Error("reset token must not appear in the response")
		}
	})

	t.Run("returns identical message for unknown email", func(t *testing.T) {
		resetSvc := &mockResetService{
			requestResetFn: func(string, time.Time) (string, error) { return "", nil },
		}
		handler := NewAuthHandler(&mockUserService{}, resetSvc)
		r := setupAuthRouter(handler)

		known := doRequest(r, "POST", "/auth/forgot-password", `{"email":"test@example.com"}`)
		unknown := doRequest(r, "POST", "/auth/forgot-password", `{"email":"nobody@example.com"}`)

		if known.Code != unknown.Code {
			t.Errorf("status codes differ: %d vs %d", known.Code, unknown.Code)
		}
		if known.Body.String() != unknown.Body.String() {
			t.Errorf("response bodies differ: %s vs %s", known.Body.String(), unknown.Body.String())
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/forgot-password", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotToken, gotPassword string
		resetSvc := &mockResetService{
			resetPasswordFn: func(token, newPassword string, _ time.Time) error {
				gotToken, gotPassword = token, newPassword
				return nil
			},
		}
		handler := NewAuthHandler(&mockUserService{}, resetSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/reset-password",
			`{"token":"some-reset-token","password":"newpassword456"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotToken != "some-reset-token" || gotPassword != "newpassword456" {
			t.Errorf("service called with (%q, %q)", gotToken, gotPassword)
		}
	})

	t.Run("returns 400 on invalid token", func(t *testing.T) {
		resetSvc := &mockResetService{
			resetPasswordFn: func(string, string, time.Time) error {
				return apperrors.ErrResetTokenInvalid
			},
		}
		handler := NewAuthHandler(&mockUserService{}, resetSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/reset-password",
			`{"token":"bad-token","password":"newpassword456"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "RESET_TOKEN_INVALID")
	})

	t.Run("returns 400 on short new password", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockResetService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/reset-password",
			`{"token":"some-reset-token","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
