package utils // package utils provides helper functions for formatting, hashing and session tokens

import (
    "errors" // errors defines the invalid session sentinel
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and verifying signed tokens
)

// ErrInvalidSession is returned by ParseSessionToken for any token that is
// malformed, expired, signed with another key or missing its claims.
var ErrInvalidSession = errors.New("invalid session")

// SessionToken represents a signed session JWT along with its expiry.
// The Token field is what the browser keeps in the session cookie.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// Session is the identity recovered from a valid session token.
type Session struct {
    UserID string
    Name   string
    Email  string
}

// NewSessionToken builds and signs an HS256 JWT for an authenticated user.
// The JWT includes the standard subject (sub), expiration (exp) and issued
// at (iat) claims plus the user's display name and email.
func NewSessionToken(secret string, s Session, ttlMin int) (SessionToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":   s.UserID,
        "name":  s.Name,
        "email": s.Email,
        "exp":   exp.Unix(),
        "iat":   now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies raw with secret and returns the session it
// carries.  Only HMAC-signed tokens are accepted.
func ParseSessionToken(secret, raw string) (Session, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with any non-HMAC algorithm.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidSession
        }
        return []byte(secret), nil
    }, jwt.WithExpirationRequired())
    if err != nil || !tok.Valid {
        return Session{}, ErrInvalidSession
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Session{}, ErrInvalidSession
    }
    sub, _ := claims["sub"].(string)
    if sub == "" {
        return Session{}, ErrInvalidSession
    }
    name, _ := claims["name"].(string)
    email, _ := claims["email"].(string)
    return Session{UserID: sub, Name: name, Email: email}, nil
}
