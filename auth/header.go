// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"net/http"
	"strings"
)

const (
	DefaultUserHeader   = "X-Forwarded-User"
	DefaultGroupsHeader = "X-Forwarded-Groups"
)

// Header trusts identity headers set by a fronting authentication proxy.  The proxy must
// strip these headers from client requests.
type Header struct {
	UserHeader   string
	GroupsHeader string

	// AdminGroups are the groups whose members may use the console
	AdminGroups []string

	Login *LoginTemplate
}

func (h *Header) Principal(request *http.Request) (Principal, bool) {
	userHeader := h.UserHeader
	if len(userHeader) == 0 {
		userHeader = DefaultUserHeader
	}

	name := strings.TrimSpace(request.Header.Get(userHeader))
	if len(name) == 0 {
		return Principal{}, false
	}

	groupsHeader := h.GroupsHeader
	if len(groupsHeader) == 0 {
		groupsHeader = DefaultGroupsHeader
	}

	var groups []string
	for _, v := range request.Header.Values(groupsHeader) {
		for _, g := range strings.Split(v, ",") {
			if g = strings.TrimSpace(g); len(g) > 0 {
				groups = append(groups, g)
			}
		}
	}

	return Principal{Name: name, Groups: groups}, true
}

func (h *Header) IsAdmin(p Principal) bool {
	return p.InAny(h.AdminGroups)
}

func (h *Header) LoginURL(returnTo string) (string, error) {
	return h.Login.Expand(returnTo)
}
