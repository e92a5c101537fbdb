// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomera/reqx/encoding"
	"github.com/gomera/reqx/request"
)

// End-to-end: global configuration, endpoint resolution, a live HTTP
// server, typed decoding and deferred mapping in one flow.
func TestEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/widgets/7", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "a=1&b=2", r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"sprocket"}`))
	})
	mux.HandleFunc("/widgets/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(404)
		_, _ = w.Write([]byte(`{"error":"no such widget"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	withConfig(t, Config{
		BaseURL:   server.URL,
		Transport: &HTTPTransport{HTTPDoer: server.Client()},
	})

	t.Run("typed fetch", func(t *testing.T) {
		d := request.New("widgets/7").
			BearerToken("tok").
			WithTask(request.Parameters(map[string]interface{}{"b": 2, "a": 1}, encoding.Query{})).
			ValidateSuccess()
		model, err := Fetch[widget](context.Background(), d)
		require.NoError(t, err)
		assert.Equal(t, widget{ID: 7, Name: "sprocket"}, model)
	})
	t.Run("validation failure carries body", func(t *testing.T) {
		d := request.New("widgets/missing").ValidateSuccess()
		_, err := Fire[widget](context.Background(), d)
		e, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, KindStatusCode, e.Kind)
		require.NotNil(t, e.Raw)
		assert.Equal(t, 404, e.Raw.StatusCode)
		msg, merr := e.Raw.MapString("error")
		require.NoError(t, merr)
		assert.Equal(t, "no such widget", msg)
	})
	t.Run("deferred mapping", func(t *testing.T) {
		d := request.New("widgets/7").BearerToken("tok").
			WithTask(request.Parameters(map[string]interface{}{"b": 2, "a": 1}, encoding.Query{}))
		raw, err := Send(context.Background(), d)
		require.NoError(t, err)
		name, err := raw.MapString("name")
		require.NoError(t, err)
		assert.Equal(t, "sprocket", name)
		w, err := Map[widget](raw)
		require.NoError(t, err)
		assert.Equal(t, 7, w.ID)
	})
}
