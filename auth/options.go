// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"errors"
	"fmt"
	"strings"
)

const (
	TypeNone   = "none"
	TypeJWT    = "jwt"
	TypeBasic  = "basic"
	TypeHeader = "header"
)

var ErrNoKey = errors.New("a jwt provider requires a key")

// Options is the configurable form of a Provider
type Options struct {
	// Type selects the provider.  An empty Type is the same as TypeNone.
	Type string `json:"type"`

	// LoginURL is an RFC 6570 template for the login page, with the variable return_to
	LoginURL string `json:"loginURL"`

	// Key is the jwt HMAC secret
	Key string `json:"key"`

	Cookie      string `json:"cookie"`
	AdminClaim  string `json:"adminClaim"`
	GroupsClaim string `json:"groupsClaim"`

	// AdminGroups is used by both the jwt and header providers
	AdminGroups []string `json:"adminGroups"`

	// Users maps basic auth user names onto bcrypt hashes
	Users  map[string]string `json:"users"`
	Admins []string          `json:"admins"`
	Realm  string            `json:"realm"`

	UserHeader   string `json:"userHeader"`
	GroupsHeader string `json:"groupsHeader"`
}

// NewProvider creates the Provider described by these options
func (o Options) NewProvider() (Provider, error) {
	login, err := NewLoginTemplate(o.LoginURL)
	if err != nil {
		return nil, fmt.Errorf("invalid login URL template %q: %w", o.LoginURL, err)
	}

	switch strings.ToLower(o.Type) {
	case "", TypeNone:
		return None{}, nil

	case TypeJWT:
		if len(o.Key) == 0 {
			return nil, ErrNoKey
		}

		return &JWT{
			Key:         []byte(o.Key),
			Cookie:      o.Cookie,
			AdminClaim:  o.AdminClaim,
			GroupsClaim: o.GroupsClaim,
			AdminGroups: o.AdminGroups,
			Login:       login,
		}, nil

	case TypeBasic:
		return &Basic{
			Users:  o.Users,
			Admins: o.Admins,
			Realm:  o.Realm,
			Login:  login,
		}, nil

	case TypeHeader:
		return &Header{
			UserHeader:   o.UserHeader,
			GroupsHeader: o.GroupsHeader,
			AdminGroups:  o.AdminGroups,
			Login:        login,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported auth provider type %q", o.Type)
	}
}
