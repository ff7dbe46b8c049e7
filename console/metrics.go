// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/statusui/resource"
	"github.com/xmidt-org/statusui/rpc"
)

const (
	RPCRequestsCounter   = "rpc_requests_total"
	AssetRequestsCounter = "asset_requests_total"
	EngineRetriesCounter = "engine_retries_total"
)

// Metrics are the console's measures
type Metrics struct {
	// RPCRequests is labelled by endpoint and outcome
	RPCRequests metrics.Counter

	// AssetRequests is labelled by outcome
	AssetRequests metrics.Counter

	// EngineRetries counts retried calls to the pipeline engine
	EngineRetries metrics.Counter
}

func (m Metrics) rpcRequests() metrics.Counter {
	if m.RPCRequests != nil {
		return m.RPCRequests
	}

	return discard.NewCounter()
}

func (m Metrics) assetRequests() metrics.Counter {
	if m.AssetRequests != nil {
		return m.AssetRequests
	}

	return discard.NewCounter()
}

func registerCounterVec(r prometheus.Registerer, counterVec *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := r.Register(counterVec); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}

		return nil, err
	}

	return counterVec, nil
}

// NewMetrics creates the console's counters in the given registry.  Counters that are
// already registered are reused.
func NewMetrics(r prometheus.Registerer) (Metrics, error) {
	rpcRequests, err := registerCounterVec(r, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: RPCRequestsCounter,
			Help: "The total number of status queries, by endpoint and outcome",
		},
		[]string{rpc.EndpointLabel, rpc.OutcomeLabel},
	))

	if err != nil {
		return Metrics{}, err
	}

	assetRequests, err := registerCounterVec(r, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: AssetRequestsCounter,
			Help: "The total number of console asset requests, by outcome",
		},
		[]string{resource.OutcomeLabel},
	))

	if err != nil {
		return Metrics{}, err
	}

	engineRetries, err := registerCounterVec(r, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: EngineRetriesCounter,
			Help: "The total number of retried pipeline engine calls",
		},
		nil,
	))

	if err != nil {
		return Metrics{}, err
	}

	return Metrics{
		RPCRequests:   gokitprometheus.NewCounter(rpcRequests),
		AssetRequests: gokitprometheus.NewCounter(assetRequests),
		EngineRetries: gokitprometheus.NewCounter(engineRetries),
	}, nil
}
