package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey   = "session_id" // string
	sessionCookieName = "sid"
	sessionCookieTTL  = 14 * 24 * time.Hour
)

// SessionCookie はセッションIDのcookieを用意する。
// 無ければ発行し、あればそのまま使う。ログイン状態とは独立で、
// 匿名ユーザーでもカートを持てる。
func SessionCookie() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string

			cookie, err := c.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				//不正な値なら発行し直す
				if _, perr := uuid.Parse(cookie.Value); perr == nil {
					sid = cookie.Value
				}
			}

			if sid == "" {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     sessionCookieName,
					Value:    sid,
					Path:     "/",
					Expires:  time.Now().Add(sessionCookieTTL),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionIDKey, sid)
			return next(c)
		}
	}
}

// GetSessionID はSessionCookieが入れたセッションIDを取り出す。
func GetSessionID(c echo.Context) (string, bool) {
	v := c.Get(CtxSessionIDKey)
	sid, ok := v.(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}
