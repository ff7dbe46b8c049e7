// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"github.com/xmidt-org/statusui/auth"
	"github.com/xmidt-org/statusui/console"
	"github.com/xmidt-org/statusui/pipeline"
	"github.com/xmidt-org/statusui/resource"
	"github.com/xmidt-org/statusui/server"
	"github.com/xmidt-org/statusui/xhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	ConsoleKey  = "console"
	AssetsKey   = "assets"
	AuthKey     = "auth"
	PipelineKey = "pipeline"
	ServerKey   = "server"

	MetricsPath = "/metrics"
)

// ConsoleConfig is the console subtree of the configuration
type ConsoleConfig struct {
	console.Config

	Prefix  string        `json:"prefix"`
	Timeout time.Duration `json:"timeout"`
}

func provide() fx.Option {
	return fx.Options(
		fx.Provide(
			unmarshalConsole,
			unmarshalAssets,
			unmarshalAuth,
			unmarshalPipeline,
			unmarshalServer,
			newRegistry,
			newMetrics,
			newResolver,
			newEngine,
			newConsole,
			newHandler,
			newServer,
		),
		fx.Invoke(startServer),
	)
}

func unmarshalConsole(v *viper.Viper) (cc ConsoleConfig, err error) {
	err = server.Unmarshal(v, ConsoleKey, &cc)
	if v.GetBool(server.DebugFlag) {
		cc.Debug = true
	}

	return
}

func unmarshalAssets(v *viper.Viper) (f resource.Factory, err error) {
	err = server.Unmarshal(v, AssetsKey, &f)
	return
}

func unmarshalAuth(v *viper.Viper) (o auth.Options, err error) {
	err = server.Unmarshal(v, AuthKey, &o)
	return
}

func unmarshalPipeline(v *viper.Viper) (o pipeline.ClientOptions, err error) {
	err = server.Unmarshal(v, PipelineKey, &o)
	return
}

func unmarshalServer(v *viper.Viper) (o xhttp.ServerOptions, err error) {
	err = server.Unmarshal(v, ServerKey, &o)
	if len(o.Address) == 0 {
		o.Address = server.DefaultAddress
	}

	return
}

func newRegistry() (*prometheus.Registry, error) {
	r := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func newResolver(f resource.Factory, logger *zap.Logger) (*resource.Resolver, error) {
	r, err := f.NewResolver(resource.DefaultTable, nil)
	if err != nil {
		return nil, err
	}

	if err := r.Verify(); err != nil {
		return nil, err
	}

	logger.Info("assets verified", zap.String("location", r.Location()), zap.Int("count", len(r.Table())))
	return r, nil
}

func newMetrics(r *prometheus.Registry) (console.Metrics, error) {
	return console.NewMetrics(r)
}

func newEngine(o pipeline.ClientOptions, m console.Metrics, logger *zap.Logger) (pipeline.Engine, error) {
	o.Logger = logger.With(zap.String("engine", o.URL))
	o.RetryCounter = m.EngineRetries
	return pipeline.NewClient(o)
}

type consoleIn struct {
	fx.In

	Config   ConsoleConfig
	Auth     auth.Options
	Resolver *resource.Resolver
	Engine   pipeline.Engine
	Metrics  console.Metrics
	Logger   *zap.Logger
}

func newConsole(in consoleIn) (http.Handler, error) {
	provider, err := in.Auth.NewProvider()
	if err != nil {
		return nil, err
	}

	return console.New(console.Options{
		Prefix:   in.Config.Prefix,
		Config:   in.Config.Config,
		Resolver: in.Resolver,
		Provider: provider,
		Engine:   in.Engine,
		Logger:   in.Logger,
		Metrics:  in.Metrics,
		Timeout:  in.Config.Timeout,
	})
}

type handlerIn struct {
	fx.In

	Console  http.Handler
	Registry *prometheus.Registry
}

// Handler is the fully composed, instrumented handler for the server
type Handler http.Handler

func newHandler(in handlerIn) Handler {
	router := mux.NewRouter()
	router.Handle(MetricsPath, promhttp.HandlerFor(in.Registry, promhttp.HandlerOpts{})).
		Methods(http.MethodGet)
	router.PathPrefix("/").Handler(in.Console)

	return otelhttp.NewHandler(router, applicationName)
}

func newServer(o xhttp.ServerOptions, h Handler, logger *zap.Logger) *http.Server {
	return xhttp.NewServer(o, logger.Named("server"), h)
}

// Exit asks the process to shut down, e.g. when the server stops unexpectedly
type Exit context.CancelFunc

// startServer binds the listen address during startup, so that an unusable address
// fails the application instead of surfacing later from the serving goroutine.
func startServer(lc fx.Lifecycle, o xhttp.ServerOptions, s *http.Server, logger *zap.Logger, exit Exit) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			l, err := o.Listen()
			if err != nil {
				return err
			}

			so := o.StartOptions(logger)
			so.Listener = l
			starter := xhttp.NewStarter(so, s)
			go func() {
				if err := starter(); !errors.Is(err, http.ErrServerClosed) {
					exit()
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Shutdown(ctx)
		},
	})
}
