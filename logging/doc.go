// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging provides an opt-in plugin that logs outgoing
// requests and their outcomes with go.uber.org/zap. Install it via
// the global configuration:
//
//	logger, _ := zap.NewProduction()
//	cfg := reqx.CurrentConfig()
//	cfg.Plugins = append(cfg.Plugins, logging.NewPlugin(logger))
//	reqx.Configure(cfg)
package logging
