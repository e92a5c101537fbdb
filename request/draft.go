// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	urlpkg "net/url"
	"time"

	"golang.org/x/net/http/httpguts"
)

var template, _ = http.NewRequest("GET", "", nil)

// A Draft is the draft wire request produced by endpoint resolution.
//
// A Draft is mutable while it moves through the plugin chain's Prepare
// stage and must be treated as immutable once it has been dispatched to
// the transport. Each invocation of the execution engine works on its
// own Draft; drafts are never shared between invocations.
type Draft struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	Method string

	// URL specifies the absolute URL to access, including any query
	// string contributed by the descriptor's task.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent, already
	// merged from the global configuration and the descriptor (the
	// descriptor wins on key collision). Plugins may add or replace
	// headers during Prepare; plugin-set values are authoritative.
	Header http.Header

	// Body is the pre-buffered request body to be sent. A nil or empty
	// body indicates no request body should be sent. For multipart
	// upload tasks the body is assembled by the transport, not here.
	Body []byte

	// Timeout is the per-request timeout the transport must honor. The
	// execution engine has no fallback timer of its own.
	Timeout time.Duration
}

// ToRequest creates an HTTP request corresponding to the draft. The
// context of the new request is set to ctx, which must not be nil.
func (d *Draft) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = d.Method
	r.URL = d.URL
	r.Header = d.Header
	if len(d.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(d.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(d.Body)), nil
		}
		r.ContentLength = int64(len(d.Body))
	}
	r.Host = d.URL.Host
	return r
}

// AddCookie adds a cookie to the draft. Per RFC 6265 section 5.4,
// AddCookie does not attach more than one Cookie header field. That
// means all cookies, if any, are written into the same line, separated
// by semicolons.
func (d *Draft) AddCookie(c *http.Cookie) {
	c2 := &http.Cookie{Name: c.Name, Value: c.Value}
	s := c2.String()
	if h := d.Header.Get("Cookie"); h != "" {
		d.Header.Set("Cookie", h+"; "+s)
	} else {
		d.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the draft's Authorization header to use HTTP Basic
// Authentication with the provided username and password.
//
// With HTTP Basic Authentication the provided username and password are
// not encrypted.
func (d *Draft) SetBasicAuth(username, password string) {
	d.Header.Set("Authorization", "Basic "+BasicAuthValue(username, password))
}

// BasicAuthValue returns the base64 credential portion of an HTTP Basic
// Authentication header value for the given username and password.
//
// See section 2 (end of page 4) of https://www.ietf.org/rfc/rfc2617.txt:
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64 encoded
// string in the credentials." It is not meant to be urlencoded.
func BasicAuthValue(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// ValidMethod reports whether method is a syntactically valid HTTP
// method. A method is valid if it is a non-empty RFC 7230 token.
func ValidMethod(method string) bool {
	// Method tokens share the header field name grammar from RFC 7230
	// section 3.2.6.
	return httpguts.ValidHeaderFieldName(method)
}
