// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderXSessionID carries the opaque cart session key chosen by the client.
	HeaderXSessionID = "X-Session-Id"

	sessionCookieName = "cart_session"
	sessionCookieTTL  = 7 * 24 * time.Hour
)

// sessionID resolves the cart session key for a request. The header wins; a
// cookie is the fallback for plain browser clients. When neither is present a
// fresh key is minted and set as a cookie so the same anonymous visitor keeps
// one cart across requests.
func sessionID(c echo.Context) string {
	if id := c.Request().Header.Get(HeaderXSessionID); id != "" {
		return id
	}

	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}
