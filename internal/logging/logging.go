// Copyright 2025 Sri Panyam
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging builds the zap.Logger the compiler threads through
// pkg/scope and pkg/compiler, with verbosity controlled by the
// PROTOTS_LOG environment variable.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// envVar names the variable that controls log verbosity, recognizing the
// same level names zap's zapcore.Level already parses ("debug", "info",
// "warn", "error"), written all-lowercase or all-uppercase.
const envVar = "PROTOTS_LOG"

// New builds a console zap.Logger at the level named by PROTOTS_LOG,
// defaulting to "warn" so a normal compile run stays quiet. verbose, when
// true, forces "debug" regardless of the environment, letting --verbose on
// the CLI override it.
func New(verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	} else if raw := strings.TrimSpace(os.Getenv(envVar)); raw != "" {
		if parsed, err := zapcore.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = ""

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
