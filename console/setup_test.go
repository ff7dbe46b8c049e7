// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/ugorji/go/codec"
	"github.com/xmidt-org/statusui/auth"
	"github.com/xmidt-org/statusui/pipeline"
	"github.com/xmidt-org/statusui/resource"
	"go.uber.org/zap/zaptest"
)

var jsonHandle = &codec.JsonHandle{
	BasicHandle: codec.BasicHandle{
		TypeInfos: codec.NewTypeInfos([]string{"json"}),
	},
}

// assetFS packages every asset of the default table under the physical paths the table expects
func assetFS() fstest.MapFS {
	m := make(fstest.MapFS)
	for _, e := range resource.DefaultTable {
		m[e.PhysicalPath] = &fstest.MapFile{Data: []byte(fmt.Sprintf("content of %s", e.PhysicalPath))}
	}

	return m
}

func newTestResolver(t *testing.T) *resource.Resolver {
	resolver, err := (&resource.Factory{}).NewResolver(nil, assetFS())
	require.NoError(t, err)
	require.NoError(t, resolver.Verify())
	return resolver
}

func newTestProvider(t *testing.T) auth.Provider {
	login, err := auth.NewLoginTemplate("https://login.example.com/{?return_to}")
	require.NoError(t, err)
	return &auth.Header{AdminGroups: []string{"ops"}, Login: login}
}

// newTestConsole builds a console over the given engine, returning it along with the registry its metrics live in
func newTestConsole(t *testing.T, c Config, engine pipeline.Engine) (http.Handler, *prometheus.Registry) {
	registry := prometheus.NewPedanticRegistry()
	m, err := NewMetrics(registry)
	require.NoError(t, err)

	h, err := New(Options{
		Config:   c,
		Resolver: newTestResolver(t),
		Provider: newTestProvider(t),
		Engine:   engine,
		Logger:   zaptest.NewLogger(t),
		Metrics:  m,
	})

	require.NoError(t, err)
	require.NotNil(t, h)
	return h, registry
}

func get(h http.Handler, target string, decorators ...func(*http.Request)) *httptest.ResponseRecorder {
	request := httptest.NewRequest("GET", target, nil)
	for _, d := range decorators {
		d(request)
	}

	response := httptest.NewRecorder()
	h.ServeHTTP(response, request)
	return response
}

func xhr(request *http.Request) {
	request.Header.Set("X-Requested-With", "XMLHttpRequest")
}

func admin(request *http.Request) {
	request.Header.Set(auth.DefaultUserHeader, "jane")
	request.Header.Set(auth.DefaultGroupsHeader, "ops")
}

func nonAdmin(request *http.Request) {
	request.Header.Set(auth.DefaultUserHeader, "joe")
	request.Header.Set(auth.DefaultGroupsHeader, "dev")
}

func decode(t *testing.T, response *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, codec.NewDecoderBytes(response.Body.Bytes(), jsonHandle).Decode(v))
}

// counterValue finds a counter sample in a registry by name and labels
func counterValue(t *testing.T, registry *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

		for _, metric := range family.GetMetric() {
			matched := 0
			for _, lp := range metric.GetLabel() {
				if labels[lp.GetName()] == lp.GetValue() {
					matched++
				}
			}

			if matched == len(labels) && len(metric.GetLabel()) == len(labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}

	return 0
}
