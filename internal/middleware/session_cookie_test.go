package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runSessionCookie(t *testing.T, cookieValue string) (sid string, rec *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: cookieValue})
	}
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.SessionCookie()(func(c echo.Context) error {
		got, ok := middleware.GetSessionID(c)
		assert.True(t, ok)
		sid = got
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	return sid, rec
}

func TestSessionCookie_IssuesWhenMissing(t *testing.T) {
	sid, rec := runSessionCookie(t, "")

	_, err := uuid.Parse(sid)
	assert.NoError(t, err)

	//Set-Cookieで新しいsidを返している
	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Equal(t, sid, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionCookie_ReusesExistingID(t *testing.T) {
	existing := uuid.NewString()

	sid, rec := runSessionCookie(t, existing)

	assert.Equal(t, existing, sid)
	//既存セッションには発行し直さない
	assert.Len(t, rec.Result().Cookies(), 0)
}

func TestSessionCookie_ReplacesGarbageValue(t *testing.T) {
	sid, rec := runSessionCookie(t, "not-a-uuid")

	assert.NotEqual(t, "not-a-uuid", sid)
	_, err := uuid.Parse(sid)
	assert.NoError(t, err)
	assert.Len(t, rec.Result().Cookies(), 1)
}
