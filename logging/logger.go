// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap Logger from the supplied options.  A nil Options produces
// an ERROR-level console logger on stdout.
func New(o *Options) *zap.Logger {
	// entries and internal errors share one rolling file
	ws := zapcore.Lock(zapcore.AddSync(o.output()))
	return zap.New(
		zapcore.NewCore(o.encoder(), ws, o.level()),
		zap.AddCaller(),
		zap.ErrorOutput(ws),
	)
}
