// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

// Package sec provides cryptographic primitives for session cookie integrity.
//
// # Architecture
//
// This package isolates security-sensitive code (token signing and
// verification) from the domain logic. It is an Infrastructure service
// injected into the session layer via the [session.CookieCodec] interface.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload embedded inside a signed session cookie.
//
// # Why a signed cookie?
//
// The cookie carries only an opaque session ID; the HS256 signature lets the
// gate reject forged or tampered IDs WITHOUT a store round-trip, so garbage
// traffic never touches the session backend.
type SessionClaims struct {
	jwt.RegisteredClaims

	// SessionID is the server-generated session identifier.
	SessionID string `json:"sid"`
}

// TokenService signs and verifies session cookie values using HS256 with the
// process-wide session secret.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: session secret must not be empty")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// SignSessionID wraps a session ID in a signed token with the given lifetime.
//
// The token lifetime matches the cookie lifetime, not the server-side record
// TTL; an expired record behind a valid cookie simply reads as "no session".
func (service *TokenService) SignSessionID(sessionID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// VerifySessionToken checks the signature and validity of a cookie value and
// returns the embedded session ID.
func (service *TokenService) VerifySessionToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return "", fmt.Errorf("sec: invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("sec: invalid session token claims")
	}

	return claims.SessionID, nil
}
