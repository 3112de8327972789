/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

type contextKey string

// UserUUIDKey is the request context key carrying the authenticated user's uuid
const UserUUIDKey contextKey = "user_uuid"

// SessionMiddleware attaches the session's user uuid to the request context when
// an auth session exists. Requests without one pass through untouched: the
// realtime channel accepts anonymous connections, they just carry no user binding.
func SessionMiddleware(store *sessions.CookieStore, next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, "auth-session")
		if err == nil {
			if userUUID, ok := session.Values["user_uuid"].(string); ok {
				r = r.WithContext(context.WithValue(r.Context(), UserUUIDKey, userUUID))
			}
		}
		next(w, r)
	}
}

// UserUUID extracts the authenticated user's uuid from the request context.
// The empty string means the request carried no auth session.
func UserUUID(r *http.Request) string {
	if uuid, ok := r.Context().Value(UserUUIDKey).(string); ok {
		return uuid
	}
	return ""
}
