// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"context"

	"github.com/gomera/reqx/request"
)

// Fire executes the descriptor and decodes the response body into a
// model of type T, returning the full typed envelope. On success the
// envelope's model is always present. Use Empty as T to skip decoding.
//
// Fire runs the full request lifecycle exactly once: resolve the
// endpoint, fold the plugin Prepare hooks over the draft, dispatch to
// the transport (or the stub generator if the descriptor is stubbed),
// run the DidReceive and Process hooks, validate the status code, and
// decode. There is no automatic retry: the terminal state of one call
// never carries into another.
//
// All failures surface as a *Error; see ErrorKind for the taxonomy.
// Cancelling ctx before the dispatch resolves discards the in-flight
// operation without running the DidReceive or Process hooks.
func Fire[T any](ctx context.Context, d request.Descriptor) (*Response[T], error) {
	raw, cfg, err := run(ctx, d)
	if err != nil {
		return nil, err
	}

	var model T
	if _, ok := any(model).(Empty); ok {
		return &Response[T]{Raw: raw, model: &model}, nil
	}

	dec := d.Decoder()
	if dec == nil {
		dec = cfg.Decoder
	}
	if decodeErr := dec.Decode(raw.Body, &model); decodeErr != nil {
		return nil, &Error{Kind: KindObjectMapping, Raw: raw, Err: decodeErr}
	}
	return &Response[T]{Raw: raw, model: &model}, nil
}

// Fetch executes the descriptor like Fire and unwraps the decoded
// model, discarding the envelope.
func Fetch[T any](ctx context.Context, d request.Descriptor) (T, error) {
	resp, err := Fire[T](ctx, d)
	if err != nil {
		var zero T
		return zero, err
	}
	return resp.Unwrap()
}

// Send executes the descriptor without decoding, returning the raw
// result for deferred mapping via Map, MapString, MapJSON or MapJQ.
// Status validation still applies.
func Send(ctx context.Context, d request.Descriptor) (*Raw, error) {
	raw, _, err := run(ctx, d)
	return raw, err
}

// run is the execution engine state machine. It performs one pass of
// resolving, preparing, dispatching, observing, deciding and status
// validation, and reports the configuration snapshot it ran under so
// callers can finish the decoding stage.
func run(ctx context.Context, d request.Descriptor) (*Raw, Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// One atomic snapshot per invocation: a concurrent Configure never
	// changes the plugin list or headers mid-flight.
	cfg := snapshot()
	chain := pluginChain(cfg.Plugins)

	draft, rerr := resolve(d, cfg)
	if rerr != nil {
		return nil, cfg, rerr
	}

	if !d.Stubbed() {
		draft = chain.prepare(draft, d)
	}
	chain.willSend(draft, d)

	var raw *Raw
	var err error
	if d.Stubbed() {
		raw, err = stub(ctx, d, cfg, draft)
	} else {
		raw, err = dispatch(ctx, cfg.Transport, draft, d.Task())
	}

	if err != nil {
		if ctx.Err() != nil {
			// Cancelled before the dispatch resolved: the operation is
			// discarded and the observe/process hooks never run.
			return nil, cfg, &Error{Kind: KindUnderlying, Raw: raw, Err: ctx.Err()}
		}
		if _, ok := AsError(err); !ok {
			err = &Error{Kind: KindUnderlying, Raw: raw, Err: err}
		}
	}

	chain.didReceive(raw, err, d)
	raw, err = chain.process(raw, err, d)
	if err != nil {
		return raw, cfg, err
	}

	policy := d.Validation()
	if policy.IsNone() {
		policy = cfg.Validation
	}
	if !policy.Accepts(raw.StatusCode) {
		return raw, cfg, &Error{Kind: KindStatusCode, Raw: raw}
	}
	return raw, cfg, nil
}

// dispatch hands the prepared draft to the transport entry point
// matching the task variant.
func dispatch(ctx context.Context, tr Transport, draft *request.Draft, t request.Task) (*Raw, error) {
	switch t.Kind() {
	case request.TaskUploadFile:
		return tr.UploadFile(ctx, draft, t.FilePath())
	case request.TaskUploadMultipart:
		return tr.UploadMultipart(ctx, draft, t.Parts())
	case request.TaskDownload:
		return tr.Download(ctx, draft, t.Selector())
	default:
		return tr.Send(ctx, draft)
	}
}
