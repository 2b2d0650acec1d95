// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"mediacms/internal/auth"
	"mediacms/internal/session"
)

// totpIssuer labels provisioned accounts in authenticator apps.
const totpIssuer = "MediaCMS"

// Auth groups the authentication handlers.
type Auth struct {
	validator *auth.Validator
	sessions  *session.Store
	username  string
	dev       bool
}

// NewAuth creates the auth handler group.
func NewAuth(validator *auth.Validator, sessions *session.Store, username string, dev bool) *Auth {
	return &Auth{
		validator: validator,
		sessions:  sessions,
		username:  username,
		dev:       dev,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code"` // TOTP, required only when configured
}

// Login handles POST /auth/login. On success it issues a server-side session
// cookie; the credential validator itself has no side effects.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err, a.dev)
		return
	}

	if !a.validator.Validate(req.Username, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil, a.dev)
		return
	}
	if a.validator.RequiresTOTP() && !a.validator.ValidateTOTP(req.Code) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil, a.dev)
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{Username: req.Username}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session", err, a.dev)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout handles POST /auth/logout, destroying the session if one exists.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// TwoFAProvision handles GET /auth/2fa. It returns the configured TOTP
// secret with its otpauth URL and QR code so the administrator can enroll
// an authenticator app. Requires an authenticated session.
func (a *Auth) TwoFAProvision(w http.ResponseWriter, r *http.Request) {
	if !a.validator.RequiresTOTP() {
		writeError(w, http.StatusNotFound, "Two-factor authentication not configured", nil, a.dev)
		return
	}

	secret := a.validator.TOTPSecret()
	otpauthURL := fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		totpIssuer, a.username, secret, totpIssuer)

	qrPNG, err := qrcode.Encode(otpauthURL, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code", err, a.dev)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret":     secret,
		"otpauthUrl": otpauthURL,
		"qrPng":      base64.StdEncoding.EncodeToString(qrPNG),
	})
}
