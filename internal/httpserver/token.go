package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errTreeChanged = errors.New("session belongs to another decision tree")

// sessionClaims ties a session ID (subject) to the tree it was started on.
type sessionClaims struct {
	Tree string `json:"tree"`
	jwt.RegisteredClaims
}

// tokens signs and verifies HS256 session tokens.
type tokens struct {
	secret []byte
	ttl    time.Duration
	tree   string
	now    func() time.Time
}

// sign creates a token for session id, expiring after ttl (when > 0).
func (t *tokens) sign(id string) (string, time.Time, error) {
	now := t.now()
	claims := sessionClaims{
		Tree: t.tree,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  id,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	var exp time.Time
	if t.ttl > 0 {
		exp = now.Add(t.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	return ss, exp, err
}

// verify returns the session ID in tok, or an error when the token is
// invalid, expired, or minted for a different tree.
func (t *tokens) verify(tok string) (string, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	if claims.Tree != t.tree {
		return "", errTreeChanged
	}
	return claims.Subject, nil
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
