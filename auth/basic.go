// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
)

const DefaultRealm = "pipeline"

var (
	// unknownUserHash is checked for names with no configured hash.  Its cost is bcrypt.DefaultCost.
	unknownUserHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

	compareHashAndPassword = bcrypt.CompareHashAndPassword
)

// Basic authenticates HTTP basic credentials against bcrypt password hashes
type Basic struct {
	// Users maps user names onto bcrypt hashes of their passwords
	Users map[string]string

	// Admins are the users allowed to use the console
	Admins []string

	// Realm is the challenge realm.  DefaultRealm is used if unset.
	Realm string

	// Login is optional.  Without it, unauthenticated page requests are challenged.
	Login *LoginTemplate
}

func (b *Basic) Principal(request *http.Request) (Principal, bool) {
	name, password, ok := request.BasicAuth()
	if !ok {
		return Principal{}, false
	}

	hash, known := b.Users[name]
	if !known {
		compareHashAndPassword(unknownUserHash, []byte(password))
		return Principal{}, false
	}

	if compareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return Principal{}, false
	}

	return Principal{Name: name}, true
}

func (b *Basic) IsAdmin(p Principal) bool {
	return slices.Contains(b.Admins, p.Name)
}

func (b *Basic) LoginURL(returnTo string) (string, error) {
	return b.Login.Expand(returnTo)
}

// Challenge asks the client for basic credentials
func (b *Basic) Challenge(h http.Header) {
	realm := b.Realm
	if len(realm) == 0 {
		realm = DefaultRealm
	}

	h.Set("WWW-Authenticate", fmt.Sprintf(`Basic realm=%q, charset="UTF-8"`, realm))
}
