// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"context"
	"time"

	"github.com/gomera/reqx/request"
)

// stub produces a raw result from the descriptor's stub configuration
// without touching the transport. The timing behavior comes from the
// descriptor override, falling back to the global default. The result
// still flows through the plugin observe and process hooks exactly as
// a live result would.
func stub(ctx context.Context, d request.Descriptor, cfg Config, draft *request.Draft) (*Raw, error) {
	behavior, ok := d.StubBehavior()
	if !ok {
		behavior = cfg.StubBehavior
	}

	if behavior.Delay > 0 {
		timer := time.NewTimer(behavior.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &Raw{
		StatusCode: d.StubStatus(),
		Body:       d.StubBody(),
		Request:    draft.ToRequest(ctx),
	}, nil
}
