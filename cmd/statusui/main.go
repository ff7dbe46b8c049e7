// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/xmidt-org/statusui/logging"
	"github.com/xmidt-org/statusui/server"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const (
	applicationName = server.DefaultApplicationName
)

func statusui(arguments []string) int {
	var (
		f = pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
		v = server.NewViper(applicationName)
	)

	if err := server.Configure(arguments, f, v); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to configure: %s\n", err)
		return 1
	}

	logOptions, err := logging.FromViper(logging.Sub(v))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read logging options: %s\n", err)
		return 1
	}

	logger := logging.New(logOptions)
	defer logger.Sync() //nolint:errcheck

	if used := v.ConfigFileUsed(); len(used) > 0 {
		logger.Info("configuration loaded", zap.String("file", used))
	}

	waitCtx, exit := context.WithCancel(context.Background())
	defer exit()

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Supply(v, logger, Exit(exit)),
		provide(),
	)

	if err := app.Err(); err != nil {
		logger.Error("unable to build application", zap.Error(err))
		return 2
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		logger.Error("unable to start application", zap.Error(err))
		return 3
	}

	signals := make(chan os.Signal, 10)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	if s := server.SignalWait(waitCtx, logger, signals, os.Interrupt, syscall.SIGTERM); s != nil {
		logger.Info("exiting due to signal", zap.Stringer("signal", s))
	}

	signal.Stop(signals)

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		logger.Error("unclean shutdown", zap.Error(err))
		return 4
	}

	return 0
}

func main() {
	os.Exit(statusui(os.Args[1:]))
}
