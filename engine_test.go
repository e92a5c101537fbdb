// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomera/reqx/request"
)

type widget struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// fakeTransport returns a canned outcome and records the drafts it was
// handed.
type fakeTransport struct {
	raw    *Raw
	err    error
	drafts []*request.Draft
	calls  []string
}

func (f *fakeTransport) Send(_ context.Context, d *request.Draft) (*Raw, error) {
	f.drafts = append(f.drafts, d)
	f.calls = append(f.calls, "send")
	return f.raw, f.err
}

func (f *fakeTransport) UploadFile(_ context.Context, d *request.Draft, _ string) (*Raw, error) {
	f.drafts = append(f.drafts, d)
	f.calls = append(f.calls, "uploadFile")
	return f.raw, f.err
}

func (f *fakeTransport) UploadMultipart(_ context.Context, d *request.Draft, _ []request.MultipartPart) (*Raw, error) {
	f.drafts = append(f.drafts, d)
	f.calls = append(f.calls, "uploadMultipart")
	return f.raw, f.err
}

func (f *fakeTransport) Download(_ context.Context, d *request.Draft, _ request.DestinationSelector) (*Raw, error) {
	f.drafts = append(f.drafts, d)
	f.calls = append(f.calls, "download")
	return f.raw, f.err
}

// recordPlugin appends a tagged entry to a shared log from every hook.
type recordPlugin struct {
	name string
	log  *[]string
}

func (p recordPlugin) Prepare(d *request.Draft, _ request.Descriptor) *request.Draft {
	*p.log = append(*p.log, p.name+".prepare")
	return d
}

func (p recordPlugin) WillSend(*request.Draft, request.Descriptor) {
	*p.log = append(*p.log, p.name+".willSend")
}

func (p recordPlugin) DidReceive(*Raw, error, request.Descriptor) {
	*p.log = append(*p.log, p.name+".didReceive")
}

func (p recordPlugin) Process(raw *Raw, err error, _ request.Descriptor) (*Raw, error) {
	*p.log = append(*p.log, p.name+".process")
	return raw, err
}

func TestFireStub(t *testing.T) {
	withConfig(t, DefaultConfig())
	d := request.New("widgets").
		WithStub([]byte(`{"id":7,"name":"sprocket"}`)).
		ValidateSuccess()

	start := time.Now()
	resp, err := Fire[widget](context.Background(), d)
	elapsed := time.Since(start)

	require.NoError(t, err)
	model, ok := resp.Model()
	require.True(t, ok)
	assert.Equal(t, widget{ID: 7, Name: "sprocket"}, model)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsSuccess())
	assert.Less(t, elapsed, 100*time.Millisecond)
	require.NotNil(t, resp.Request)
	assert.Equal(t, "http://localhost/widgets", resp.Request.URL.String())
}

func TestFireStubDelayed(t *testing.T) {
	withConfig(t, DefaultConfig())
	d := request.New("widgets").
		WithStub([]byte(`{}`)).
		WithStubBehavior(request.StubDelayed(500 * time.Millisecond))

	start := time.Now()
	_, err := Fire[widget](context.Background(), d)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, 450*time.Millisecond)
}

func TestFireStubStatusOverride(t *testing.T) {
	withConfig(t, DefaultConfig())
	d := request.New("widgets").
		WithStub([]byte(`{"error":"gone"}`)).
		WithStubStatus(404).
		ValidateSuccess()

	_, err := Fire[widget](context.Background(), d)
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindStatusCode, e.Kind)
	require.NotNil(t, e.Raw)
	assert.Equal(t, 404, e.Raw.StatusCode)
	assert.Equal(t, []byte(`{"error":"gone"}`), e.Raw.Body)
}

func TestFireStubDelayCancelled(t *testing.T) {
	withConfig(t, DefaultConfig())
	d := request.New("widgets").
		WithStub([]byte(`{}`)).
		WithStubBehavior(request.StubDelayed(10 * time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := Fire[widget](ctx, d)
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnderlying, e.Kind)
	assert.ErrorIs(t, e, context.DeadlineExceeded)
}

func TestFireEmptySentinel(t *testing.T) {
	withConfig(t, DefaultConfig())
	// Body is not valid JSON; Empty must skip decoding entirely.
	d := request.New("health").WithStub([]byte("OK, not json"))
	resp, err := Fire[Empty](context.Background(), d)
	require.NoError(t, err)
	_, ok := resp.Model()
	assert.True(t, ok)
	assert.Equal(t, []byte("OK, not json"), resp.Body)
}

func TestFireDecodeFailure(t *testing.T) {
	withConfig(t, DefaultConfig())
	d := request.New("widgets").WithStub([]byte("not json"))
	_, err := Fire[widget](context.Background(), d)
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindObjectMapping, e.Kind)
	require.NotNil(t, e.Raw)
	assert.Equal(t, []byte("not json"), e.Raw.Body)
}

func TestFetch(t *testing.T) {
	withConfig(t, DefaultConfig())
	d := request.New("widgets").WithStub([]byte(`{"id":7,"name":"sprocket"}`))
	model, err := Fetch[widget](context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, widget{ID: 7, Name: "sprocket"}, model)
}

func TestSend(t *testing.T) {
	withConfig(t, DefaultConfig())
	d := request.New("widgets").WithStub([]byte("arbitrary bytes"))
	raw, err := Send(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 200, raw.StatusCode)
	assert.Equal(t, []byte("arbitrary bytes"), raw.Body)
}

func TestFireLiveTransport(t *testing.T) {
	tr := &fakeTransport{raw: &Raw{StatusCode: 200, Body: []byte(`{"id":1,"name":"w"}`)}}
	withConfig(t, Config{Transport: tr})
	d := request.New("widgets").ValidateSuccess()
	resp, err := Fire[widget](context.Background(), d)
	require.NoError(t, err)
	model, ok := resp.Model()
	require.True(t, ok)
	assert.Equal(t, widget{ID: 1, Name: "w"}, model)
	require.Len(t, tr.drafts, 1)
	assert.Equal(t, "http://localhost/widgets", tr.drafts[0].URL.String())
}

func TestFireTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	tr := &fakeTransport{raw: &Raw{}, err: cause}
	withConfig(t, Config{Transport: tr})
	_, err := Fire[widget](context.Background(), request.New("widgets"))
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnderlying, e.Kind)
	assert.ErrorIs(t, e, cause)
}

func TestDispatchRouting(t *testing.T) {
	testCases := []struct {
		name string
		task request.Task
		want string
	}{
		{name: "plain routes to send", task: request.Plain(), want: "send"},
		{name: "upload file", task: request.UploadFile("/tmp/f"), want: "uploadFile"},
		{name: "multipart", task: request.UploadMultipart(request.BytesPart("a", nil)), want: "uploadMultipart"},
		{name: "download", task: request.Download(func(tmp string, _ *http.Response) (string, request.DownloadOptions) {
			return tmp, request.DownloadOptions{}
		}), want: "download"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			tr := &fakeTransport{raw: &Raw{StatusCode: 200}}
			withConfig(t, Config{Transport: tr})
			_, err := Send(context.Background(), request.New("w").WithTask(testCase.task))
			require.NoError(t, err)
			assert.Equal(t, []string{testCase.want}, tr.calls)
		})
	}
}

func TestPluginOrdering(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		var log []string
		tr := &fakeTransport{raw: &Raw{StatusCode: 200}}
		withConfig(t, Config{
			Transport: tr,
			Plugins: []Plugin{
				recordPlugin{name: "P1", log: &log},
				recordPlugin{name: "P2", log: &log},
			},
		})
		_, err := Send(context.Background(), request.New("widgets"))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"P1.prepare", "P2.prepare",
			"P1.willSend", "P2.willSend",
			"P1.didReceive", "P2.didReceive",
			"P1.process", "P2.process",
		}, log)
	})
	t.Run("stub skips prepare only", func(t *testing.T) {
		var log []string
		withConfig(t, Config{
			Plugins: []Plugin{
				recordPlugin{name: "P1", log: &log},
				recordPlugin{name: "P2", log: &log},
			},
		})
		_, err := Send(context.Background(), request.New("widgets").WithStub(nil))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"P1.willSend", "P2.willSend",
			"P1.didReceive", "P2.didReceive",
			"P1.process", "P2.process",
		}, log)
	})
}

// gateTransport signals when a dispatch enters and parks it until
// released, so a test can act while an invocation is in flight.
type gateTransport struct {
	fakeTransport
	entered chan struct{}
	release chan struct{}
}

func (g *gateTransport) Send(_ context.Context, _ *request.Draft) (*Raw, error) {
	close(g.entered)
	<-g.release
	return &Raw{StatusCode: 200}, nil
}

func TestConfigureMidFlight(t *testing.T) {
	var log []string
	tr := &gateTransport{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	withConfig(t, Config{
		Transport: tr,
		Plugins:   []Plugin{recordPlugin{name: "P1", log: &log}},
	})

	done := make(chan error)
	go func() {
		_, err := Send(context.Background(), request.New("widgets"))
		done <- err
	}()

	// Swap the plugin chain while the dispatch is parked inside the
	// transport. The invocation snapshotted its configuration at start,
	// so the swap must not affect it.
	<-tr.entered
	Configure(Config{
		Transport: tr,
		Plugins:   []Plugin{recordPlugin{name: "P2", log: &log}},
	})
	close(tr.release)

	require.NoError(t, <-done)
	assert.Equal(t, []string{
		"P1.prepare", "P1.willSend", "P1.didReceive", "P1.process",
	}, log)
	// New invocations see the replacement chain.
	assert.Equal(t, "P2", CurrentConfig().Plugins[0].(recordPlugin).name)
}

func TestTransportStatusErrorPassthrough(t *testing.T) {
	// A transport doing its own status-range validation returns a
	// status code error with the full response attached; the engine
	// must surface it untouched rather than re-wrap it as underlying.
	raw := &Raw{StatusCode: 503, Body: []byte(`{"error":"overloaded"}`)}
	tr := &fakeTransport{raw: raw, err: &Error{Kind: KindStatusCode, Raw: raw}}
	withConfig(t, Config{Transport: tr})

	_, err := Send(context.Background(), request.New("widgets"))
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindStatusCode, e.Kind)
	require.NotNil(t, e.Raw)
	assert.Same(t, raw, e.Raw)
	assert.Equal(t, 503, e.Raw.StatusCode)
	assert.Equal(t, []byte(`{"error":"overloaded"}`), e.Raw.Body)
}

// rewritePlugin replaces the outcome during result processing.
type rewritePlugin struct {
	NopPlugin
	raw *Raw
	err error
}

func (p rewritePlugin) Process(*Raw, error, request.Descriptor) (*Raw, error) {
	return p.raw, p.err
}

func TestPluginProcessRewrite(t *testing.T) {
	t.Run("failure to success", func(t *testing.T) {
		tr := &fakeTransport{raw: &Raw{StatusCode: 404}}
		withConfig(t, Config{
			Transport: tr,
			Plugins:   []Plugin{rewritePlugin{raw: &Raw{StatusCode: 200, Body: []byte("ok")}}},
		})
		raw, err := Send(context.Background(), request.New("w").ValidateSuccess())
		require.NoError(t, err)
		assert.Equal(t, 200, raw.StatusCode)
		assert.Equal(t, []byte("ok"), raw.Body)
	})
	t.Run("success to failure", func(t *testing.T) {
		boom := errors.New("rejected by policy")
		tr := &fakeTransport{raw: &Raw{StatusCode: 200}}
		withConfig(t, Config{
			Transport: tr,
			Plugins:   []Plugin{rewritePlugin{err: boom}},
		})
		_, err := Send(context.Background(), request.New("w"))
		assert.ErrorIs(t, err, boom)
	})
}

// blockingTransport parks until the context is cancelled.
type blockingTransport struct {
	fakeTransport
}

func (b *blockingTransport) Send(ctx context.Context, _ *request.Draft) (*Raw, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestCancellationSkipsHooks(t *testing.T) {
	var log []string
	withConfig(t, Config{
		Transport: &blockingTransport{},
		Plugins:   []Plugin{recordPlugin{name: "P1", log: &log}},
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := Send(ctx, request.New("w"))
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnderlying, e.Kind)
	assert.ErrorIs(t, e, context.DeadlineExceeded)
	// The dispatch never resolved: observe and process hooks are skipped.
	assert.Equal(t, []string{"P1.prepare", "P1.willSend"}, log)
}

func TestValidationFallback(t *testing.T) {
	t.Run("config policy applies when descriptor has none", func(t *testing.T) {
		tr := &fakeTransport{raw: &Raw{StatusCode: 404}}
		withConfig(t, Config{Transport: tr, Validation: request.ValidateSuccess()})
		_, err := Send(context.Background(), request.New("w"))
		e, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, KindStatusCode, e.Kind)
	})
	t.Run("descriptor policy wins", func(t *testing.T) {
		tr := &fakeTransport{raw: &Raw{StatusCode: 404}}
		withConfig(t, Config{Transport: tr, Validation: request.ValidateSuccess()})
		raw, err := Send(context.Background(), request.New("w").WithValidation(request.ValidateCustom(404)))
		require.NoError(t, err)
		assert.Equal(t, 404, raw.StatusCode)
	})
	t.Run("no policy accepts everything", func(t *testing.T) {
		tr := &fakeTransport{raw: &Raw{StatusCode: 500}}
		withConfig(t, Config{Transport: tr})
		raw, err := Send(context.Background(), request.New("w"))
		require.NoError(t, err)
		assert.Equal(t, 500, raw.StatusCode)
	})
}

func TestNilContext(t *testing.T) {
	withConfig(t, DefaultConfig())
	raw, err := Send(nil, request.New("w").WithStub([]byte("ok"))) //nolint:staticcheck
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), raw.Body)
}

func TestResolutionErrorBeforeHooks(t *testing.T) {
	var log []string
	withConfig(t, Config{Plugins: []Plugin{recordPlugin{name: "P1", log: &log}}})
	d := request.New("w").WithBaseURL("http://bad host")
	_, err := Send(context.Background(), d)
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindRequestMapping, e.Kind)
	assert.Empty(t, log)
}

func TestTaskConstructionErrorSurfaces(t *testing.T) {
	withConfig(t, DefaultConfig())
	task := request.CompositeParameters(
		map[string]interface{}{"a": 1}, queryDestEncoding{}, nil)
	_, err := Send(context.Background(), request.New("w").WithTask(task))
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindParameterEncoding, e.Kind)
}

type queryDestEncoding struct{}

func (queryDestEncoding) Apply(*request.Draft, map[string]interface{}) error { return nil }
func (queryDestEncoding) Destination() request.Destination                   { return request.DestinationQuery }
