// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"time"

	"github.com/gomera/reqx/codec"
)

// DefaultTimeout is the per-request timeout a descriptor carries when
// none is set explicitly.
const DefaultTimeout = 30 * time.Second

// DefaultStubStatus is the status code a stubbed response carries when
// none is set explicitly.
const DefaultStubStatus = 200

// A StubBehavior controls the timing of a stubbed response. The zero
// value responds immediately.
type StubBehavior struct {
	// Delay is the artificial delay before the stubbed response is
	// produced.
	Delay time.Duration
}

// StubImmediate is the behavior that produces the stubbed response with
// no delay.
var StubImmediate = StubBehavior{}

// StubDelayed returns the behavior that produces the stubbed response
// after sleeping for d.
func StubDelayed(d time.Duration) StubBehavior {
	return StubBehavior{Delay: d}
}

// A Descriptor is an immutable, chainable request specification. It
// captures everything the execution engine needs to turn a logical
// request into a concrete wire request: path, method, task, headers,
// timeout, validation policy, base URL override, decoder override, and
// stub configuration.
//
// Every mutator returns a new Descriptor value and leaves the receiver
// untouched, so a descriptor is safe to reuse concurrently as a
// template across many calls:
//
//	base := request.New("/users").ValidateSuccess()
//	get := base.Get()
//	del := base.Delete().WithTimeout(5 * time.Second)
//
// Descriptors perform no I/O. A descriptor is consumed by exactly one
// execution engine call per Fire/Fetch/Send invocation and has no
// teardown of its own.
type Descriptor struct {
	path         string
	method       string
	task         Task
	header       http.Header
	timeout      time.Duration
	validation   ValidationPolicy
	baseURL      string
	decoder      codec.Decoder
	stubbed      bool
	stubBody     []byte
	stubStatus   int
	stubBehavior *StubBehavior
}

// New returns a descriptor for the given path with the defaults: method
// GET, task Plain, timeout DefaultTimeout, no validation. The path is
// joined onto the configured base URL at resolution time.
func New(path string) Descriptor {
	return Descriptor{
		path:    path,
		method:  http.MethodGet,
		task:    Plain(),
		timeout: DefaultTimeout,
	}
}

// WithPath returns a copy of the descriptor with the given path.
func (d Descriptor) WithPath(path string) Descriptor {
	d.path = path
	return d
}

// WithMethod returns a copy of the descriptor with the given HTTP
// method. The method is validated at resolution time, not here.
func (d Descriptor) WithMethod(method string) Descriptor {
	d.method = method
	return d
}

// Get returns a copy of the descriptor with method GET.
func (d Descriptor) Get() Descriptor { return d.WithMethod(http.MethodGet) }

// Post returns a copy of the descriptor with method POST.
func (d Descriptor) Post() Descriptor { return d.WithMethod(http.MethodPost) }

// Put returns a copy of the descriptor with method PUT.
func (d Descriptor) Put() Descriptor { return d.WithMethod(http.MethodPut) }

// Delete returns a copy of the descriptor with method DELETE.
func (d Descriptor) Delete() Descriptor { return d.WithMethod(http.MethodDelete) }

// Patch returns a copy of the descriptor with method PATCH.
func (d Descriptor) Patch() Descriptor { return d.WithMethod(http.MethodPatch) }

// Head returns a copy of the descriptor with method HEAD.
func (d Descriptor) Head() Descriptor { return d.WithMethod(http.MethodHead) }

// WithTask returns a copy of the descriptor with the given task,
// replacing the previous task wholesale.
func (d Descriptor) WithTask(t Task) Descriptor {
	d.task = t
	return d
}

// WithHeader returns a copy of the descriptor with the given header
// set. The receiver's header map is cloned, never mutated.
func (d Descriptor) WithHeader(key, value string) Descriptor {
	d.header = cloneHeader(d.header)
	d.header.Set(key, value)
	return d
}

// WithHeaders returns a copy of the descriptor with all the given
// headers set. The receiver's header map is cloned, never mutated.
func (d Descriptor) WithHeaders(h map[string]string) Descriptor {
	d.header = cloneHeader(d.header)
	for k, v := range h {
		d.header.Set(k, v)
	}
	return d
}

// BearerToken returns a copy of the descriptor with an Authorization
// header carrying the given bearer token.
func (d Descriptor) BearerToken(token string) Descriptor {
	return d.WithHeader("Authorization", "Bearer "+token)
}

// BasicAuth returns a copy of the descriptor with an Authorization
// header using HTTP Basic Authentication with the provided username
// and password.
func (d Descriptor) BasicAuth(username, password string) Descriptor {
	return d.WithHeader("Authorization", "Basic "+BasicAuthValue(username, password))
}

// WithTimeout returns a copy of the descriptor with the given
// per-request timeout.
func (d Descriptor) WithTimeout(timeout time.Duration) Descriptor {
	d.timeout = timeout
	return d
}

// WithValidation returns a copy of the descriptor with the given
// status validation policy.
func (d Descriptor) WithValidation(p ValidationPolicy) Descriptor {
	d.validation = p
	return d
}

// ValidateSuccess returns a copy of the descriptor that accepts only
// 200-299 responses. It is sugar for WithValidation(ValidateSuccess()).
func (d Descriptor) ValidateSuccess() Descriptor {
	return d.WithValidation(ValidateSuccess())
}

// ValidateSuccessAndRedirects returns a copy of the descriptor that
// accepts only 200-399 responses.
func (d Descriptor) ValidateSuccessAndRedirects() Descriptor {
	return d.WithValidation(ValidateSuccessAndRedirects())
}

// WithBaseURL returns a copy of the descriptor with a base URL that
// overrides the globally configured one.
func (d Descriptor) WithBaseURL(baseURL string) Descriptor {
	d.baseURL = baseURL
	return d
}

// WithDecoder returns a copy of the descriptor with a decoder that
// overrides the globally configured one.
func (d Descriptor) WithDecoder(dec codec.Decoder) Descriptor {
	d.decoder = dec
	return d
}

// WithStub returns a copy of the descriptor configured to produce a
// stubbed response with the given body instead of touching the
// transport. The stub status defaults to DefaultStubStatus and the
// timing to the globally configured stub behavior.
func (d Descriptor) WithStub(body []byte) Descriptor {
	d.stubbed = true
	d.stubBody = body
	return d
}

// WithStubStatus returns a copy of the descriptor whose stubbed
// response carries the given status code, and marks the descriptor
// stubbed.
func (d Descriptor) WithStubStatus(status int) Descriptor {
	d.stubbed = true
	d.stubStatus = status
	return d
}

// WithStubBehavior returns a copy of the descriptor with a stub timing
// behavior that overrides the globally configured one.
func (d Descriptor) WithStubBehavior(b StubBehavior) Descriptor {
	d.stubBehavior = &b
	return d
}

// Path returns the descriptor's path.
func (d Descriptor) Path() string { return d.path }

// Method returns the descriptor's HTTP method.
func (d Descriptor) Method() string { return d.method }

// Task returns the descriptor's task.
func (d Descriptor) Task() Task { return d.task }

// Header returns the descriptor's headers. The returned map must be
// treated as read-only; use WithHeader to derive a changed descriptor.
func (d Descriptor) Header() http.Header { return d.header }

// Timeout returns the descriptor's per-request timeout.
func (d Descriptor) Timeout() time.Duration { return d.timeout }

// Validation returns the descriptor's status validation policy.
func (d Descriptor) Validation() ValidationPolicy { return d.validation }

// BaseURL returns the descriptor's base URL override, or the empty
// string if the globally configured base URL should be used.
func (d Descriptor) BaseURL() string { return d.baseURL }

// Decoder returns the descriptor's decoder override, or nil if the
// globally configured decoder should be used.
func (d Descriptor) Decoder() codec.Decoder { return d.decoder }

// Stubbed reports whether the descriptor is configured to produce a
// stubbed response instead of dispatching to the transport.
func (d Descriptor) Stubbed() bool { return d.stubbed }

// StubBody returns the configured stub payload.
func (d Descriptor) StubBody() []byte { return d.stubBody }

// StubStatus returns the status code of the stubbed response,
// defaulting to DefaultStubStatus.
func (d Descriptor) StubStatus() int {
	if d.stubStatus == 0 {
		return DefaultStubStatus
	}
	return d.stubStatus
}

// StubBehavior returns the descriptor's stub timing override. The
// second return value reports whether an override is present.
func (d Descriptor) StubBehavior() (StubBehavior, bool) {
	if d.stubBehavior == nil {
		return StubBehavior{}, false
	}
	return *d.stubBehavior, true
}

func cloneHeader(h http.Header) http.Header {
	h2 := make(http.Header, len(h)+1)
	for k, v := range h {
		v2 := make([]string, len(v))
		copy(v2, v)
		h2[k] = v2
	}
	return h2
}
