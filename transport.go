// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomera/reqx/request"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// An IdleCloser is the interface that wraps the basic
// CloseIdleConnections method.
type IdleCloser interface {
	CloseIdleConnections()
}

// A Transport is the opaque collaborator that turns a finalized draft
// wire request into bytes, a status code and headers, or a transport
// error. The execution engine owns none of the transport's concerns:
// connection pooling, TLS, redirects and socket I/O all belong here.
//
// A transport error is returned as a plain error; the engine wraps it
// into a KindUnderlying *Error together with whatever partial Raw the
// transport produced. A transport that performs its own status-range
// validation may instead return a *Error of KindStatusCode with the
// full Raw attached, which the engine passes through unchanged.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Transport interface {
	// Send dispatches the draft and buffers the whole response body.
	Send(ctx context.Context, d *request.Draft) (*Raw, error)

	// UploadFile dispatches the draft with the content of the local
	// file at path as its body.
	UploadFile(ctx context.Context, d *request.Draft, path string) (*Raw, error)

	// UploadMultipart dispatches the draft with a multipart form body
	// assembled from parts, in order.
	UploadMultipart(ctx context.Context, d *request.Draft, parts []request.MultipartPart) (*Raw, error)

	// Download dispatches the draft, writes the response body to a
	// temporary file and moves it to the destination chosen by sel.
	Download(ctx context.Context, d *request.Draft, sel request.DestinationSelector) (*Raw, error)
}

// An HTTPTransport is the default Transport, built on an HTTPDoer. Its
// zero value is a valid configuration using http.DefaultClient.
//
// The HTTPDoer typically has internal state (cached TCP connections)
// so HTTPTransport instances should be reused instead of created as
// needed. HTTPTransport is safe for concurrent use by multiple
// goroutines.
type HTTPTransport struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer
}

// DefaultTransport is the transport used when the global configuration
// does not specify one.
var DefaultTransport Transport = &HTTPTransport{}

// Send dispatches the draft and buffers the whole response body. The
// draft timeout is applied as a context deadline, which the underlying
// HTTPDoer honors for the whole request/response cycle.
func (t *HTTPTransport) Send(ctx context.Context, d *request.Draft) (*Raw, error) {
	ctx, cancel := t.timeoutContext(ctx, d)
	defer cancel()

	r := d.ToRequest(ctx)
	resp, err := t.doer().Do(r)
	if err != nil {
		return &Raw{Request: r}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw := &Raw{
		StatusCode: resp.StatusCode,
		Request:    r,
		Response:   resp,
	}
	raw.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		return raw, err
	}
	return raw, nil
}

// UploadFile reads the file at path into the draft body, defaulting
// the Content-Type from the file extension or content if no
// Content-Type header is present, and dispatches like Send.
func (t *HTTPTransport) UploadFile(ctx context.Context, d *request.Draft, path string) (*Raw, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d.Body = b
	if d.Header.Get("Content-Type") == "" {
		d.Header.Set("Content-Type", sniffType(path, b))
	}
	return t.Send(ctx, d)
}

// UploadMultipart assembles a multipart form body from parts, in
// order, and dispatches like Send. File parts are read from disk and
// their media type sniffed; stream parts must declare a file name, as
// required by the wire format.
func (t *HTTPTransport) UploadMultipart(ctx context.Context, d *request.Draft, parts []request.MultipartPart) (*Raw, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, part := range parts {
		if err := writePart(w, part); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	d.Body = buf.Bytes()
	d.Header.Set("Content-Type", w.FormDataContentType())
	return t.Send(ctx, d)
}

// Download dispatches the draft, streams the response body to a
// temporary file and asks sel for the final destination. The temporary
// file is removed if the move fails.
func (t *HTTPTransport) Download(ctx context.Context, d *request.Draft, sel request.DestinationSelector) (*Raw, error) {
	ctx, cancel := t.timeoutContext(ctx, d)
	defer cancel()

	r := d.ToRequest(ctx)
	resp, err := t.doer().Do(r)
	if err != nil {
		return &Raw{Request: r}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw := &Raw{
		StatusCode: resp.StatusCode,
		Request:    r,
		Response:   resp,
	}

	tmp, err := os.CreateTemp("", "reqx-download-*")
	if err != nil {
		return raw, err
	}
	_, err = io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return raw, err
	}

	dest, opts := sel(tmp.Name(), resp)
	if err := place(tmp.Name(), dest, opts); err != nil {
		_ = os.Remove(tmp.Name())
		return raw, err
	}
	return raw, nil
}

// CloseIdleConnections invokes the same method on the transport's
// underlying HTTPDoer, if it has one, and does nothing otherwise.
func (t *HTTPTransport) CloseIdleConnections() {
	if ic, ok := t.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (t *HTTPTransport) doer() HTTPDoer {
	if t.HTTPDoer == nil {
		return http.DefaultClient
	}

	return t.HTTPDoer
}

func (t *HTTPTransport) timeoutContext(ctx context.Context, d *request.Draft) (context.Context, context.CancelFunc) {
	if d.Timeout > 0 {
		return context.WithTimeout(ctx, d.Timeout)
	}
	return context.WithCancel(ctx)
}

var errStreamPartName = errors.New("reqx: stream part requires a file name")

func writePart(w *multipart.Writer, part request.MultipartPart) error {
	switch {
	case part.IsFile():
		b, err := os.ReadFile(part.Path())
		if err != nil {
			return err
		}
		mimeType := part.MIMEType
		if mimeType == "" {
			mimeType = sniffType(part.Path(), b)
		}
		fw, err := createFormFile(w, part.FieldName, part.FileName, mimeType)
		if err != nil {
			return err
		}
		_, err = fw.Write(b)
		return err
	case part.IsStream():
		if part.FileName == "" {
			return errStreamPartName
		}
		mimeType := part.MIMEType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		fw, err := createFormFile(w, part.FieldName, part.FileName, mimeType)
		if err != nil {
			return err
		}
		_, err = io.CopyN(fw, part.Reader(), part.Length())
		return err
	case part.FileName == "" && part.MIMEType == "":
		// Plain form field.
		return w.WriteField(part.FieldName, string(part.Data()))
	default:
		mimeType := part.MIMEType
		if mimeType == "" {
			mimeType = http.DetectContentType(part.Data())
		}
		fw, err := createFormFile(w, part.FieldName, part.FileName, mimeType)
		if err != nil {
			return err
		}
		_, err = fw.Write(part.Data())
		return err
	}
}

func createFormFile(w *multipart.Writer, field, fileName, mimeType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		`form-data; name="`+escapeQuotes(field)+`"; filename="`+escapeQuotes(fileName)+`"`)
	h.Set("Content-Type", mimeType)
	return w.CreatePart(h)
}

// escapeQuotes is lifted verbatim from mime/multipart/writer.go.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func sniffType(path string, content []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		return byExt
	}
	return http.DetectContentType(content)
}

func place(tmpPath, dest string, opts request.DownloadOptions) error {
	if opts.CreateIntermediateDirectories {
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
	}
	if !opts.OverwriteExisting {
		if _, err := os.Stat(dest); err == nil {
			return &os.PathError{Op: "rename", Path: dest, Err: os.ErrExist}
		}
	}
	return os.Rename(tmpPath, dest)
}
