/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package twin

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookie carries the session token set by a login.
	SessionCookie = "session"

	issuer = "lpg-subsidy-portal"
)

var ErrSession = errors.New("invalid session")

type stakeholder struct {
	name        string
	permissions []string
}

//nolint:gochecknoglobals
var stakeholders = map[string]stakeholder{
	"presiden":              {"Presiden Republik Indonesia", []string{"view_all", "executive_reports"}},
	"menteri":               {"Menteri Terkait", []string{"view_ministry", "policy_reports"}},
	"pertamina-corporate":   {"Pertamina Corporate", []string{"view_supply_chain", "manage_distribution", "view_analytics"}},
	"pertamina-operational": {"Pertamina Operasional", []string{"view_operations", "track_vehicles", "manage_deliveries"}},
	"spbe":                  {"SPBE", []string{"view_inventory", "manage_stock"}},
	"agen":                  {"Agen LPG", []string{"view_orders", "manage_distribution"}},
	"pangkalan":             {"Pangkalan LPG", []string{"view_stock", "manage_sales"}},
	"pengecer":              {"Pengecer LPG", []string{"view_inventory", "sales_reports"}},
	"konsumen":              {"Konsumen", []string{"view_subsidy", "track_usage"}},
}

// newUser returns the identity for a stakeholder role, if the role exists.
func newUser(username, role string) (User, bool) {
	holder, ok := stakeholders[role]
	if !ok {
		return User{}, false
	}

	return User{
		ID:          "user_" + uuid.NewString(),
		Username:    username,
		Role:        role,
		Name:        holder.name,
		Permissions: slices.Clone(holder.permissions),
	}, true
}

// SessionClaims is the session token payload.
type SessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`

	jwt.RegisteredClaims
}

// Sessions issues and verifies signed session tokens.
type Sessions struct {
	key []byte
	ttl time.Duration
}

// NewSessions returns an issuer with a fresh random signing key.
func NewSessions(ttl time.Duration) (*Sessions, error) {
	key := make([]byte, 32)

	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}

	return &Sessions{
		key: key,
		ttl: ttl,
	}, nil
}

// Issue signs a token for the user.
func (s *Sessions) Issue(user User) (string, error) {
	now := time.Now()

	claims := &SessionClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}

	return signed, nil
}

// Verify checks a token's signature, issuer and lifetime.
func (s *Sessions) Verify(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSession, err)
	}

	return claims, nil
}

// Cookie returns the cookie that carries a session.
func (s *Sessions) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie returns a cookie that clears the session.
func (s *Sessions) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// FromRequest returns the session presented by a request, either as a bearer
// token or a session cookie.
func (s *Sessions) FromRequest(r *http.Request) (*SessionClaims, error) {
	var token string

	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		token = bearer
	} else if cookie, err := r.Cookie(SessionCookie); err == nil {
		token = cookie.Value
	}

	if token == "" {
		return nil, fmt.Errorf("%w: no session presented", ErrSession)
	}

	return s.Verify(token)
}
