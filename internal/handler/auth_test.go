package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/stayhub/hotel-booking-api/internal/config"
	"github.com/stayhub/hotel-booking-api/internal/repository"
	"github.com/stayhub/hotel-booking-api/internal/utils"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 30,
		BcryptCost:     4,
	}
	h := NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db))
	return h, mock, func() { db.Close() }
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

var authUserCols = []string{
	"id", "email", "first_name", "last_name", "phone", "id_type", "id_number",
	"preferred_currency", "preferred_language", "newsletter_subscription", "special_offers",
	"room_preferences", "dietary_restrictions", "password_hash", "created_at", "updated_at",
}

func authUserRow(t *testing.T, id uint64, email, password string) *sqlmock.Rows {
	t.Helper()
	now := time.Now()
	var hash interface{}
	if password != "" {
		h, err := utils.HashPassword(password, 4)
		assert.NoError(t, err)
		hash = h
	}
	return sqlmock.NewRows(authUserCols).AddRow(
		id, email, "Demo", "User", nil, nil, nil,
		"USD", "english", true, true, nil, nil, hash, now, now)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h, _, done := newAuthHandler(t)
	defer done()

	c, rec := postJSON("/v1/auth/register",
		`{"email":"a@b.com","password":"12345","first_name":"A","last_name":"B"}`)
	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 6 characters")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'demo@example.com' for key 'users.email'"))

	c, rec := postJSON("/v1/auth/register",
		`{"email":"demo@example.com","password":"password123","first_name":"Demo","last_name":"User"}`)
	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSuccess(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=? LIMIT 1")).
		WithArgs("demo@example.com").
		WillReturnRows(authUserRow(t, 1, "demo@example.com", "password123"))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := postJSON("/v1/auth/login", `{"email":"demo@example.com","password":"password123"}`)
	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access"`)
	assert.Contains(t, rec.Body.String(), `"refresh"`)
	assert.Contains(t, rec.Body.String(), `"first_name":"Demo"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=? LIMIT 1")).
		WithArgs("demo@example.com").
		WillReturnRows(authUserRow(t, 1, "demo@example.com", "password123"))

	c, rec := postJSON("/v1/auth/login", `{"email":"demo@example.com","password":"wrong-pass"}`)
	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSocialOnlyAccountRejected(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	// Social accounts have a NULL password hash and cannot use
	// credential login.
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=? LIMIT 1")).
		WithArgs("social@example.com").
		WillReturnRows(authUserRow(t, 2, "social@example.com", ""))

	c, rec := postJSON("/v1/auth/login", `{"email":"social@example.com","password":"anything"}`)
	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSocialSignInCreatesAccount(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=? LIMIT 1")).
		WithArgs("new@example.com").
		WillReturnRows(sqlmock.NewRows(authUserCols))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=? LIMIT 1")).
		WithArgs(uint64(5)).
		WillReturnRows(authUserRow(t, 5, "new@example.com", ""))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := postJSON("/v1/auth/social",
		`{"email":"new@example.com","first_name":"Demo","last_name":"User"}`)
	assert.NoError(t, h.Social(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshRotatesToken(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	raw := "raw-refresh-token"
	hash := utils.HashRefreshRaw(raw)
	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens WHERE token_hash=? LIMIT 1")).
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(1, time.Now().Add(time.Hour), nil))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(hash).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=? LIMIT 1")).
		WithArgs(uint64(1)).
		WillReturnRows(authUserRow(t, 1, "demo@example.com", "password123"))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(2, 1))

	c, rec := postJSON("/v1/auth/refresh", `{"refresh_token":"`+raw+`"}`)
	assert.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL")).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	c, rec := postJSON("/v1/auth/logout-all", `{}`)
	c.Set("user_id", float64(7))
	assert.NoError(t, h.LogoutAll(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutAllRequiresIdentity(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	// No user_id claim in the context, nothing may touch the database.
	c, rec := postJSON("/v1/auth/logout-all", `{}`)
	assert.NoError(t, h.LogoutAll(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	raw := "stale-refresh-token"
	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens WHERE token_hash=? LIMIT 1")).
		WithArgs(utils.HashRefreshRaw(raw)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(1, time.Now().Add(-time.Hour), nil))

	c, rec := postJSON("/v1/auth/refresh", `{"refresh_token":"`+raw+`"}`)
	assert.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
