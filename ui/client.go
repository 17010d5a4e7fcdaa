package ui

import (
	"net/http"
	"strings"

	"modboard/domain/core"
)

const (
	// ClientIDHeader lets a dashboard tab name its own stats selection
	ClientIDHeader = "X-Client-ID"
	// ClientCookie carries the selection id of browsers that send no header
	ClientCookie = "modboard_client"

	maxClientIDLen = 64
)

// clientID identifies whose period selection a request belongs to: the
// header first, then the cookie. A browser with neither gets a fresh id
// cookie.
func clientID(w http.ResponseWriter, r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(ClientIDHeader)); validClientID(id) {
		return id
	}
	if c, err := r.Cookie(ClientCookie); err == nil && validClientID(c.Value) {
		return c.Value
	}

	id := core.NewID().String()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func validClientID(id string) bool {
	if id == "" || len(id) > maxClientIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
