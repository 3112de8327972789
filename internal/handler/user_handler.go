/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"chatserver/internal/nlog"
	"chatserver/internal/repository"
	"chatserver/internal/service"

	"github.com/gorilla/sessions"
)

type registerReqFields struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Picture     string `json:"picture"`
	PhoneNumber string `json:"phoneNumber"`
}

type loginReqFields struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserHandler is used to handle the account creation and login routes
type UserHandler struct {
	authService service.AuthService
	cookieStore *sessions.CookieStore
	logger      nlog.Logger
}

func NewUserHandler(authService service.AuthService, cookieStore *sessions.CookieStore, logger nlog.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		cookieStore: cookieStore,
		logger:      logger,
	}
}

// Used to create a new user account
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request registerReqFields
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := h.authService.Register(request.Name, request.Email, request.Password, request.Picture, request.PhoneNumber)
	if err != nil {
		h.logger.Logf("Registration failed: %v", err)
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Used to authenticate a user; on success it also starts the auth session
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request loginReqFields
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := h.authService.Login(request.Email, request.Password)
	if err != nil {
		h.logger.Logf("Login failed: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, _ := h.cookieStore.Get(r, "auth-session")
	session.Values["user_uuid"] = user.UUID
	session.Values["email"] = user.Email
	if err := sessions.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, user)
}
