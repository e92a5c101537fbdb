// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"go.uber.org/zap"

	"github.com/gomera/reqx"
	"github.com/gomera/reqx/request"
)

// Plugin evaluates a retry Policy against each outcome during result
// processing and logs whether a retry would have been eligible, along
// with the wait period the policy's Waiter would have imposed.
//
// Plugin never re-invokes the execution engine. Each Fire/Fetch/Send
// invocation runs the request lifecycle exactly once, and wiring a
// real re-dispatch here would break that guarantee, so the plugin is
// advisory only. It returns every outcome untouched.
type Plugin struct {
	reqx.NopPlugin

	policy Policy
	log    *zap.Logger
}

// NewPlugin returns an advisory retry plugin evaluating policy. A nil
// logger disables logging output without disabling evaluation.
func NewPlugin(policy Policy, log *zap.Logger) *Plugin {
	if policy == nil {
		policy = DefaultPolicy
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Plugin{policy: policy, log: log}
}

// Process reports the policy's verdict for the outcome and returns it
// unchanged.
func (p *Plugin) Process(raw *reqx.Raw, err error, desc request.Descriptor) (*reqx.Raw, error) {
	if p.policy.Decide(0, raw, err) {
		fields := []zap.Field{
			zap.String("method", desc.Method()),
			zap.String("path", desc.Path()),
			zap.Duration("wait", p.policy.Wait(0)),
		}
		if raw != nil {
			fields = append(fields, zap.Int("status", raw.StatusCode))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		p.log.Info("retry eligible", fields...)
	}
	return raw, err
}
