package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/business/user"
	"shopmate/domain"
)

// envelope mirrors the wire shape of every response body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type stubUserService struct {
	registerUser  domain.User
	registerToken string
	registerErr   error

	loginUser  domain.User
	loginToken string
	loginErr   error

	meUser domain.User
	meErr  error
}

func (s *stubUserService) Register(context.Context, *domain.User) (domain.User, string, error) {
	return s.registerUser, s.registerToken, s.registerErr
}

func (s *stubUserService) Login(context.Context, string, string) (string, domain.User, error) {
	return s.loginToken, s.loginUser, s.loginErr
}

func (s *stubUserService) GetUserByID(context.Context, uint) (domain.User, error) {
	return s.meUser, s.meErr
}

func TestRegisterHandler_Created(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{
		registerUser:  domain.User{ID: 1, Name: "Asha", Email: "asha@example.com"},
		registerToken: "jwt-token",
	})

	req, rec := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"name":"Asha","phone":"+911234567890","address":"12 Park Street","email":"asha@example.com","password":"s3cret-pass"}`)

	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "User registered successfully", body.Message)
	assert.Contains(t, string(body.Data), `"token":"jwt-token"`)
}

func TestRegisterHandler_MissingFields(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{})

	req, rec := jsonRequest(http.MethodPost, "/api/auth/register", `{"email":"asha@example.com"}`)

	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_ERROR", body.Error)
	assert.Equal(t, "All fields are required", body.Message)
}

func TestRegisterHandler_Conflict(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{registerErr: user.ErrUserExists})

	req, rec := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"name":"Asha","phone":"+911234567890","address":"12 Park Street","email":"asha@example.com","password":"s3cret-pass"}`)

	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "USER_EXISTS", decodeEnvelope(t, rec).Error)
}

func TestLoginHandler_Success(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{
		loginUser:  domain.User{ID: 1, Email: "asha@example.com"},
		loginToken: "jwt-token",
	})

	req, rec := jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"s3cret-pass"}`)

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Login successful", body.Message)
	assert.Contains(t, string(body.Data), `"token":"jwt-token"`)
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{loginErr: user.ErrUserNotFound})

	req, rec := jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"nobody@example.com","password":"whatever"}`)

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "USER_NOT_FOUND", body.Error)
	assert.Equal(t, "User not found. Please register first.", body.Message)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{loginErr: user.ErrInvalidCredentials})

	req, rec := jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"wrong"}`)

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeEnvelope(t, rec).Error)
}

func TestMeHandler(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{meUser: domain.User{ID: 5, Email: "asha@example.com"}})

	req, rec := jsonRequest(http.MethodGet, "/api/auth/me", "")
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(5))

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"email":"asha@example.com"`)
}

func TestMeHandler_NotFound(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{meErr: user.ErrUserNotFound})

	req, rec := jsonRequest(http.MethodGet, "/api/auth/me", "")
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(99))

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMeHandler_NoIdentity(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{meErr: errors.New("should not be reached")})

	req, rec := jsonRequest(http.MethodGet, "/api/auth/me", "")

	require.NoError(t, h.Me(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
