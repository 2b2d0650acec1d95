// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth validates administrator credentials against the configured
// identity. There is exactly one recognized account; its username and bcrypt
// password hash come from configuration.
package auth

import (
	"errors"
	"log/slog"

	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

// Validator checks supplied credentials against the configured administrator
// identity. It has no side effects; session issuance is the caller's job.
type Validator struct {
	username     string
	passwordHash string
	totpSecret   string
}

// New creates a Validator for the configured username and bcrypt password
// hash. totpSecret is optional; when non-empty, logins must also present a
// valid TOTP code.
func New(username, passwordHash, totpSecret string) *Validator {
	return &Validator{
		username:     username,
		passwordHash: passwordHash,
		totpSecret:   totpSecret,
	}
}

// Validate reports whether the supplied username/password pair matches the
// configured identity. Empty inputs fail without any comparison. A malformed
// stored hash fails closed: it is logged and treated as a mismatch rather
// than surfaced as a fault.
func (v *Validator) Validate(username, password string) bool {
	if username == "" || password == "" {
		return false
	}
	if username != v.username {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(v.passwordHash), []byte(password))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		slog.Error("admin password hash is malformed", "error", err)
	}
	return false
}

// RequiresTOTP reports whether a TOTP second factor is configured.
func (v *Validator) RequiresTOTP() bool {
	return v.totpSecret != ""
}

// ValidateTOTP checks a time-based one-time code against the configured
// secret. Always false when no secret is configured.
func (v *Validator) ValidateTOTP(code string) bool {
	if v.totpSecret == "" {
		return false
	}
	return totp.Validate(code, v.totpSecret)
}

// TOTPSecret returns the configured TOTP secret. Used by the provisioning
// endpoint to build the otpauth URL.
func (v *Validator) TOTPSecret() string {
	return v.totpSecret
}
