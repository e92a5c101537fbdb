// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomera/reqx"
	"github.com/gomera/reqx/request"
)

func TestPlugin(t *testing.T) {
	desc := request.New("widgets").Get()
	u, err := url.Parse("http://localhost/widgets")
	require.NoError(t, err)
	draft := &request.Draft{Method: "GET", URL: u}

	t.Run("counts dispatches", func(t *testing.T) {
		p := NewPlugin(prometheus.NewRegistry())
		p.WillSend(draft, desc)
		p.WillSend(draft, desc)
		got := testutil.ToFloat64(p.requests.WithLabelValues("GET", "widgets"))
		assert.Equal(t, 2.0, got)
	})
	t.Run("counts responses by status", func(t *testing.T) {
		p := NewPlugin(prometheus.NewRegistry())
		p.DidReceive(&reqx.Raw{StatusCode: 200}, nil, desc)
		p.DidReceive(&reqx.Raw{StatusCode: 200}, nil, desc)
		p.DidReceive(&reqx.Raw{StatusCode: 404}, nil, desc)
		assert.Equal(t, 2.0, testutil.ToFloat64(p.responses.WithLabelValues("GET", "widgets", "200")))
		assert.Equal(t, 1.0, testutil.ToFloat64(p.responses.WithLabelValues("GET", "widgets", "404")))
		assert.Equal(t, 0.0, testutil.ToFloat64(p.errors.WithLabelValues("GET", "widgets")))
	})
	t.Run("counts errors", func(t *testing.T) {
		p := NewPlugin(prometheus.NewRegistry())
		p.DidReceive(nil, errors.New("refused"), desc)
		assert.Equal(t, 1.0, testutil.ToFloat64(p.errors.WithLabelValues("GET", "widgets")))
	})
	t.Run("duplicate registration panics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		NewPlugin(reg)
		assert.Panics(t, func() { NewPlugin(reg) })
	})
}
