// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gomera/reqx"
	"github.com/gomera/reqx/request"
)

// Plugin logs the lifecycle of each invocation: the outgoing wire
// request at dispatch time and the outcome when it arrives. The engine
// itself never logs, so installing this plugin is the only way to get
// request traffic into the log stream.
//
// Successful outcomes are written at the configured level, failed
// outcomes always at Error level. The zero Plugin is not usable;
// construct with NewPlugin.
type Plugin struct {
	reqx.NopPlugin

	log   *zap.Logger
	level zap.AtomicLevel
}

// NewPlugin returns a logging plugin writing to log at Info level. A
// nil log falls back to zap.NewNop, which silences the plugin.
func NewPlugin(log *zap.Logger) *Plugin {
	if log == nil {
		log = zap.NewNop()
	}
	return &Plugin{log: log, level: zap.NewAtomicLevelAt(zap.InfoLevel)}
}

// SetLevel changes the level request and success entries are written
// at. Safe for concurrent use.
func (p *Plugin) SetLevel(l zapcore.Level) {
	p.level.SetLevel(l)
}

// WillSend logs the fully prepared outgoing request.
func (p *Plugin) WillSend(d *request.Draft, desc request.Descriptor) {
	if ce := p.log.Check(p.level.Level(), "sending request"); ce != nil {
		ce.Write(
			zap.String("method", d.Method),
			zap.String("url", d.URL.String()),
			zap.String("path", desc.Path()),
			zap.Int("body_bytes", len(d.Body)),
		)
	}
}

// DidReceive logs the dispatch outcome.
func (p *Plugin) DidReceive(raw *reqx.Raw, err error, desc request.Descriptor) {
	fields := []zap.Field{
		zap.String("path", desc.Path()),
	}
	if raw != nil {
		fields = append(fields,
			zap.Int("status", raw.StatusCode),
			zap.Int("body_bytes", len(raw.Body)),
		)
	}
	if err != nil {
		if ce := p.log.Check(zap.ErrorLevel, "request failed"); ce != nil {
			ce.Write(append(fields, zap.Error(err))...)
		}
		return
	}
	if ce := p.log.Check(p.level.Level(), "received response"); ce != nil {
		ce.Write(fields...)
	}
}
