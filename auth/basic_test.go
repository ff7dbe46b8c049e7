// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBasic(t *testing.T) {
	provider := &Basic{
		Users: map[string]string{
			"joe":  hashPassword(t, "joe's password"),
			"jane": hashPassword(t, "jane's password"),
		},
		Admins: []string{"jane"},
	}

	testData := []struct {
		description string
		user        string
		password    string
		anonymous   bool
		expectOK    bool
		expectAdmin bool
	}{
		{description: "Anonymous", anonymous: true},
		{description: "UnknownUser", user: "bob", password: "joe's password"},
		{description: "WrongPassword", user: "joe", password: "jane's password"},
		{description: "User", user: "joe", password: "joe's password", expectOK: true},
		{description: "Admin", user: "jane", password: "jane's password", expectOK: true, expectAdmin: true},
	}

	for _, record := range testData {
		t.Run(record.description, func(t *testing.T) {
			var (
				assert  = assert.New(t)
				request = httptest.NewRequest("GET", "/", nil)
			)

			if !record.anonymous {
				request.SetBasicAuth(record.user, record.password)
			}

			p, ok := provider.Principal(request)
			assert.Equal(record.expectOK, ok)
			if ok {
				assert.Equal(record.user, p.Name)
			}

			assert.Equal(record.expectAdmin, ok && provider.IsAdmin(p))
		})
	}

	t.Run("Challenge", func(t *testing.T) {
		assert := assert.New(t)

		h := make(http.Header)
		provider.Challenge(h)
		assert.Equal(`Basic realm="pipeline", charset="UTF-8"`, h.Get("WWW-Authenticate"))

		(&Basic{Realm: "ops"}).Challenge(h)
		assert.Equal(`Basic realm="ops", charset="UTF-8"`, h.Get("WWW-Authenticate"))
	})

	t.Run("UnknownUserHashes", func(t *testing.T) {
		var (
			assert   = assert.New(t)
			request  = httptest.NewRequest("GET", "/", nil)
			compared [][]byte
		)

		t.Cleanup(func() { compareHashAndPassword = bcrypt.CompareHashAndPassword })
		compareHashAndPassword = func(hash, password []byte) error {
			compared = append(compared, hash)
			return bcrypt.CompareHashAndPassword(hash, password)
		}

		request.SetBasicAuth("bob", "joe's password")
		_, ok := provider.Principal(request)
		assert.False(ok)
		assert.Equal([][]byte{unknownUserHash}, compared)

		cost, err := bcrypt.Cost(unknownUserHash)
		assert.NoError(err)
		assert.Equal(bcrypt.DefaultCost, cost)
		assert.ErrorIs(bcrypt.CompareHashAndPassword(unknownUserHash, []byte("bob")), bcrypt.ErrMismatchedHashAndPassword)
	})

	t.Run("NoLoginURL", func(t *testing.T) {
		_, err := provider.LoginURL("http://localhost/")
		assert.ErrorIs(t, err, ErrNoLoginURL)
	})
}
