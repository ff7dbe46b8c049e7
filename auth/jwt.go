// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/spf13/cast"
)

const (
	DefaultAdminClaim  = "admin"
	DefaultGroupsClaim = "groups"

	bearerPrefix = "Bearer "
)

// JWT authenticates requests carrying an HMAC-signed token, either in a cookie or
// as a bearer token in the Authorization header.  The token subject is the principal.
type JWT struct {
	// Key is the shared HMAC secret
	Key []byte

	// Cookie is the name of the cookie holding the token.  If unset, only the Authorization header is consulted.
	Cookie string

	// AdminClaim names a boolean claim that marks administrators.  DefaultAdminClaim is used if unset.
	AdminClaim string

	// GroupsClaim names the claim holding the principal's groups.  DefaultGroupsClaim is used if unset.
	GroupsClaim string

	// AdminGroups are groups whose members are administrators
	AdminGroups []string

	Login *LoginTemplate
}

func (j *JWT) adminClaim() string {
	if len(j.AdminClaim) > 0 {
		return j.AdminClaim
	}

	return DefaultAdminClaim
}

func (j *JWT) groupsClaim() string {
	if len(j.GroupsClaim) > 0 {
		return j.GroupsClaim
	}

	return DefaultGroupsClaim
}

func (j *JWT) token(request *http.Request) string {
	if len(j.Cookie) > 0 {
		if c, err := request.Cookie(j.Cookie); err == nil && len(c.Value) > 0 {
			return c.Value
		}
	}

	if v := request.Header.Get("Authorization"); strings.HasPrefix(v, bearerPrefix) {
		return strings.TrimSpace(v[len(bearerPrefix):])
	}

	return ""
}

func (j *JWT) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return j.Key, nil
}

func (j *JWT) Principal(request *http.Request) (Principal, bool) {
	raw := j.token(request)
	if len(raw) == 0 {
		return Principal{}, false
	}

	token, err := jwt.Parse(raw, j.keyFunc)
	if err != nil || !token.Valid {
		return Principal{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, false
	}

	name := cast.ToString(claims["sub"])
	if len(name) == 0 {
		return Principal{}, false
	}

	return Principal{
		Name:   name,
		Groups: cast.ToStringSlice(claims[j.groupsClaim()]),
		Claims: claims,
	}, true
}

func (j *JWT) IsAdmin(p Principal) bool {
	return cast.ToBool(p.Claims[j.adminClaim()]) || p.InAny(j.AdminGroups)
}

func (j *JWT) LoginURL(returnTo string) (string, error) {
	return j.Login.Expand(returnTo)
}
