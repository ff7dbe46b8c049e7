// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testKey = []byte("a shared secret for tests")

// outcomeCounter records totals by label values, e.g. "outcome=forbidden"
type outcomeCounter struct {
	lock   *sync.Mutex
	totals map[string]float64
	labels []string
}

func newOutcomeCounter() *outcomeCounter {
	return &outcomeCounter{
		lock:   new(sync.Mutex),
		totals: make(map[string]float64),
	}
}

func (oc *outcomeCounter) With(labelValues ...string) metrics.Counter {
	return &outcomeCounter{
		lock:   oc.lock,
		totals: oc.totals,
		labels: append(append([]string{}, oc.labels...), labelValues...),
	}
}

func (oc *outcomeCounter) Add(delta float64) {
	var pairs []string
	for i := 0; i+1 < len(oc.labels); i += 2 {
		pairs = append(pairs, oc.labels[i]+"="+oc.labels[i+1])
	}

	oc.lock.Lock()
	oc.totals[strings.Join(pairs, ",")] += delta
	oc.lock.Unlock()
}

func (oc *outcomeCounter) total(key string) float64 {
	oc.lock.Lock()
	defer oc.lock.Unlock()
	return oc.totals[key]
}

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": {"Bearer " + token}}
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func expiredClaims(subject string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
}
