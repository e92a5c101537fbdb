// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics provides a plugin exporting request traffic counters
// through Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gomera/reqx"
	"github.com/gomera/reqx/request"
)

// Plugin counts outgoing requests, their response status codes, and
// dispatch errors, labelled by method and descriptor path. The
// descriptor path rather than the resolved URL keeps the label
// cardinality bounded for templated paths.
type Plugin struct {
	reqx.NopPlugin

	requests  *prometheus.CounterVec
	responses *prometheus.CounterVec
	errors    *prometheus.CounterVec
}

// NewPlugin returns a metrics plugin with its collectors registered on
// reg. A nil reg registers on the default registry.
func NewPlugin(reg prometheus.Registerer) *Plugin {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &Plugin{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reqx",
			Name:      "requests_total",
			Help:      "Outgoing requests dispatched.",
		}, []string{"method", "path"}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reqx",
			Name:      "responses_total",
			Help:      "Responses received, by HTTP status code.",
		}, []string{"method", "path", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reqx",
			Name:      "errors_total",
			Help:      "Dispatches that ended in an error.",
		}, []string{"method", "path"}),
	}
	reg.MustRegister(p.requests, p.responses, p.errors)
	return p
}

// WillSend counts the dispatch.
func (p *Plugin) WillSend(d *request.Draft, desc request.Descriptor) {
	p.requests.WithLabelValues(d.Method, desc.Path()).Inc()
}

// DidReceive counts the outcome.
func (p *Plugin) DidReceive(raw *reqx.Raw, err error, desc request.Descriptor) {
	if err != nil {
		p.errors.WithLabelValues(desc.Method(), desc.Path()).Inc()
		return
	}
	if raw != nil {
		p.responses.WithLabelValues(desc.Method(), desc.Path(), strconv.Itoa(raw.StatusCode)).Inc()
	}
}
