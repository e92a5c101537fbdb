// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package reqx is a typed HTTP request-building and execution layer.
Callers assemble an immutable, chainable request descriptor, optionally
attach plugins and stub behavior, and execute it to receive a decoded
response within uniform error semantics.

Build and fire a request:

	type User struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	d := request.New("/users/42").
		Get().
		ValidateSuccess()
	resp, err := reqx.Fire[User](ctx, d)
	...
	user, err := reqx.Fetch[User](ctx, d)

Configure process-wide defaults once at startup:

	reqx.Configure(reqx.Config{
		BaseURL: "https://api.example.com",
		Header:  http.Header{"User-Agent": {"myapp/1.0"}},
		Plugins: []reqx.Plugin{logging.NewPlugin(logger)},
	})

The configuration is replaced wholesale and snapshotted atomically at
the start of every invocation; tests that call Configure must reset it
between cases with Configure(DefaultConfig()).

To test callers without a network, stub the response:

	d := request.New("/users/42").
		WithStub([]byte(`{"id":42,"name":"Ada"}`)).
		WithStubBehavior(request.StubDelayed(500 * time.Millisecond))
	resp, err := reqx.Fire[User](ctx, d)

Stubbed calls skip the transport and the plugin Prepare stage but run
the WillSend, DidReceive and Process hooks exactly as live calls do.

To hook into the request lifecycle, implement Plugin (embedding
NopPlugin for unused hooks) and register it in the configuration. The
built-in plugins live in the logging, metrics, requestid, cache and
retry packages.

For deferred decoding, use Send and the mapping methods of Raw:

	raw, err := reqx.Send(ctx, d)
	...
	name, err := raw.MapString("user.name")
	count, err := reqx.Map[int](raw, reqx.AtKeyPath("count"))

The per-request timeout is a property of the descriptor and is enforced
by the transport; the engine deliberately has no fallback timer of its
own.
*/
package reqx
