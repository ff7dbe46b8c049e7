// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"

	"golang.org/x/exp/slices"
)

// Principal is an authenticated caller
type Principal struct {
	// Name is the caller's identity, e.g. a user name or token subject
	Name string

	// Groups are the roles or groups the caller belongs to, if the provider knows them
	Groups []string

	// Claims holds any additional attributes the provider extracted
	Claims map[string]interface{}
}

// InAny tests if this principal belongs to at least one of the given groups
func (p Principal) InAny(groups []string) bool {
	for _, g := range p.Groups {
		if slices.Contains(groups, g) {
			return true
		}
	}

	return false
}

type principalKey struct{}

// NewContext returns a context carrying the given principal
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the Principal (if any) along with a boolean that indicates whether
// a principal was present.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
