// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"os"

	"go.uber.org/zap"
)

// SignalWait blocks until one of the waitOn signals arrives, the signals channel is closed, or the context
// is canceled.  The signal which ended the wait is returned, or nil if the wait ended for any other reason.
// Signals outside of waitOn are logged and ignored.
//
// Canceling the context is how components such as a failed server ask the process to exit.
func SignalWait(ctx context.Context, logger *zap.Logger, signals <-chan os.Signal, waitOn ...os.Signal) os.Signal {
	filter := make(map[os.Signal]bool, len(waitOn))
	for _, s := range waitOn {
		filter[s] = true
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("wait canceled", zap.Error(ctx.Err()))
			return nil

		case s, ok := <-signals:
			if !ok {
				return nil
			}

			if filter[s] {
				return s
			}

			logger.Info("ignoring signal", zap.Stringer("signal", s))
		}
	}
}
