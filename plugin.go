// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"github.com/gomera/reqx/request"
)

// A Plugin intercepts request plan executions. Install plugins via the
// global configuration to extend the execution engine with custom
// functionality: header injection, logging, metrics, error rewriting.
//
// Registration order is execution order for every hook; there is no
// priority system. Prepare and Process are left-to-right folds over the
// plugin list, WillSend and DidReceive are ordered side effects.
//
// In stub mode Prepare is skipped (there is no real wire request to
// mutate) but WillSend, DidReceive and Process run exactly as on the
// live path, so plugin-based test assertions behave identically in
// both modes. Plugins must therefore keep these hooks safe to run for
// stubbed results.
//
// A plugin must not panic from a hook; a plugin-internal failure is
// expressed by rewriting the outcome in Process. Plugins holding
// mutable state shared across concurrent invocations must synchronize
// it themselves.
//
// Embed NopPlugin to implement only the hooks a plugin needs.
type Plugin interface {
	// Prepare may mutate or replace the draft wire request before it
	// is sent. It runs after header merging, so headers set here are
	// authoritative over descriptor and global headers.
	Prepare(d *request.Draft, desc request.Descriptor) *request.Draft

	// WillSend observes the fully prepared request immediately before
	// dispatch. Side effect only.
	WillSend(d *request.Draft, desc request.Descriptor)

	// DidReceive observes the outcome of the dispatch, success or
	// error, before any result processing. Side effect only.
	DidReceive(raw *Raw, err error, desc request.Descriptor)

	// Process may transform the outcome before decoding. It can
	// convert success to failure or failure to success, or return its
	// arguments untouched.
	Process(raw *Raw, err error, desc request.Descriptor) (*Raw, error)
}

// NopPlugin is a Plugin with no-op implementations of all four hooks.
// Embed it to implement only a subset.
type NopPlugin struct{}

// Prepare returns the draft unchanged.
func (NopPlugin) Prepare(d *request.Draft, _ request.Descriptor) *request.Draft { return d }

// WillSend does nothing.
func (NopPlugin) WillSend(*request.Draft, request.Descriptor) {}

// DidReceive does nothing.
func (NopPlugin) DidReceive(*Raw, error, request.Descriptor) {}

// Process returns the outcome unchanged.
func (NopPlugin) Process(raw *Raw, err error, _ request.Descriptor) (*Raw, error) {
	return raw, err
}

type pluginChain []Plugin

func (c pluginChain) prepare(d *request.Draft, desc request.Descriptor) *request.Draft {
	for _, p := range c {
		d = p.Prepare(d, desc)
	}
	return d
}

func (c pluginChain) willSend(d *request.Draft, desc request.Descriptor) {
	for _, p := range c {
		p.WillSend(d, desc)
	}
}

func (c pluginChain) didReceive(raw *Raw, err error, desc request.Descriptor) {
	for _, p := range c {
		p.DidReceive(raw, err, desc)
	}
}

func (c pluginChain) process(raw *Raw, err error, desc request.Descriptor) (*Raw, error) {
	for _, p := range c {
		raw, err = p.Process(raw, err, desc)
	}
	return raw, err
}
