// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"fmt"
	"net/http"
	urlpkg "net/url"
	"strings"

	"github.com/gomera/reqx/encoding"
	"github.com/gomera/reqx/request"
)

// resolve converts a descriptor plus a configuration snapshot into a
// draft wire request: absolute URL, merged headers, timeout, and the
// body or query contribution of the descriptor's task.
//
// Only URL construction fails with KindRequestMapping here; encoder
// failures surface as KindEncodableMapping and parameter encoding
// failures (including construction-time task violations) as
// KindParameterEncoding.
func resolve(d request.Descriptor, cfg Config) (*request.Draft, *Error) {
	base := d.BaseURL()
	if base == "" {
		base = cfg.BaseURL
	}
	if base == "" {
		base = DefaultBaseURL
	}
	full := joinURL(base, d.Path())

	u, err := urlpkg.Parse(full)
	if err != nil {
		return nil, &Error{Kind: KindRequestMapping, URL: full, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &Error{Kind: KindRequestMapping, URL: full,
			Err: fmt.Errorf("reqx: url %q is not absolute", full)}
	}

	method := d.Method()
	if method == "" {
		method = http.MethodGet
	}
	if !request.ValidMethod(method) {
		return nil, &Error{Kind: KindRequestMapping, URL: full,
			Err: fmt.Errorf("reqx: invalid method %q", method)}
	}

	timeout := d.Timeout()
	if timeout == 0 {
		timeout = cfg.Timeout
	}

	draft := &request.Draft{
		Method:  method,
		URL:     u,
		Header:  mergeHeaders(cfg.Header, d.Header()),
		Timeout: timeout,
	}

	if rerr := applyTask(draft, d.Task(), cfg); rerr != nil {
		return nil, rerr
	}
	return draft, nil
}

// applyTask dispatches on the task variant to the matching encoding
// path.
func applyTask(draft *request.Draft, t request.Task, cfg Config) *Error {
	if err := t.Err(); err != nil {
		return &Error{Kind: KindParameterEncoding, Err: err}
	}

	var query encoding.Query
	switch t.Kind() {
	case request.TaskPlain, request.TaskUploadFile:
		// No body or query contribution; uploads are assembled by the
		// transport.
	case request.TaskRawBytes:
		draft.Body = t.Body()
	case request.TaskEncodable:
		enc := t.Encoder()
		if enc == nil {
			enc = cfg.Encoder
		}
		b, err := enc.Encode(t.Object())
		if err != nil {
			return &Error{Kind: KindEncodableMapping, Err: err}
		}
		draft.Body = b
		if draft.Header.Get("Content-Type") == "" {
			draft.Header.Set("Content-Type", "application/json")
		}
	case request.TaskParameters:
		if err := t.Encoding().Apply(draft, t.Params()); err != nil {
			return &Error{Kind: KindParameterEncoding, Err: err}
		}
	case request.TaskCompositeData:
		draft.Body = t.Body()
		if err := query.Apply(draft, t.Query()); err != nil {
			return &Error{Kind: KindParameterEncoding, Err: err}
		}
	case request.TaskCompositeParameters:
		if err := t.Encoding().Apply(draft, t.Params()); err != nil {
			return &Error{Kind: KindParameterEncoding, Err: err}
		}
		if err := query.Apply(draft, t.Query()); err != nil {
			return &Error{Kind: KindParameterEncoding, Err: err}
		}
	case request.TaskUploadMultipart:
		if len(t.Query()) > 0 {
			if err := query.Apply(draft, t.Query()); err != nil {
				return &Error{Kind: KindParameterEncoding, Err: err}
			}
		}
	case request.TaskDownload:
		if t.Encoding() != nil && len(t.Params()) > 0 {
			if err := t.Encoding().Apply(draft, t.Params()); err != nil {
				return &Error{Kind: KindParameterEncoding, Err: err}
			}
		}
	}
	return nil
}

// mergeHeaders overlays descriptor headers on global defaults; the
// descriptor wins on key collision.
func mergeHeaders(global http.Header, descriptor http.Header) http.Header {
	merged := make(http.Header, len(global)+len(descriptor))
	for k, vs := range global {
		for _, v := range vs {
			merged.Add(k, v)
		}
	}
	for k, vs := range descriptor {
		merged.Del(k)
		for _, v := range vs {
			merged.Add(k, v)
		}
	}
	return merged
}

func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
