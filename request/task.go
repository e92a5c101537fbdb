// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gomera/reqx/codec"
)

// A TaskKind identifies the active case of a Task.
type TaskKind int

const (
	// TaskPlain is a request with no body and no parameters.
	TaskPlain TaskKind = iota
	// TaskRawBytes is a request whose body is a pre-built byte slice.
	TaskRawBytes
	// TaskEncodable is a request whose body is produced by encoding an
	// arbitrary model value.
	TaskEncodable
	// TaskParameters is a request built from a parameter map and a
	// parameter encoding.
	TaskParameters
	// TaskCompositeData is a request with a pre-built body plus
	// URL query parameters.
	TaskCompositeData
	// TaskCompositeParameters is a request with body parameters
	// (encoded by a body-targeting encoding) plus URL query parameters.
	TaskCompositeParameters
	// TaskUploadFile is a request that uploads a local file as its
	// body.
	TaskUploadFile
	// TaskUploadMultipart is a request whose body is a multipart form
	// assembled by the transport.
	TaskUploadMultipart
	// TaskDownload is a request whose response body is written to a
	// caller-selected destination file.
	TaskDownload
)

var errCompositeBodyEncoding = errors.New(
	"reqx/request: composite parameters require a body-targeting encoding")

// A Task describes how a request's body and parameters are constructed.
// It is a tagged union: exactly one case is active, and the active case
// determines which encoding path the endpoint resolver takes.
//
// Tasks are immutable values. Construct them with the case constructors
// (Plain, RawBytes, Encodable, Parameters, and so on) and install them
// on a descriptor with WithTask, which replaces the previous task
// wholesale.
type Task struct {
	kind     TaskKind
	body     []byte
	object   interface{}
	encoder  codec.Encoder
	params   map[string]interface{}
	paramEnc ParameterEncoding
	query    map[string]interface{}
	filePath string
	parts    []MultipartPart
	selector DestinationSelector
	err      error
}

// Plain returns a task with no body and no parameters. It is the zero
// value of Task and the default task of a descriptor.
func Plain() Task {
	return Task{kind: TaskPlain}
}

// RawBytes returns a task whose body is exactly data.
func RawBytes(data []byte) Task {
	return Task{kind: TaskRawBytes, body: data}
}

// Encodable returns a task whose body is produced by encoding v with
// the globally configured encoder.
func Encodable(v interface{}) Task {
	return Task{kind: TaskEncodable, object: v}
}

// EncodableWith returns a task whose body is produced by encoding v
// with enc instead of the globally configured encoder.
func EncodableWith(v interface{}, enc codec.Encoder) Task {
	return Task{kind: TaskEncodable, object: v, encoder: enc}
}

// Parameters returns a task built from a parameter map and a parameter
// encoding. Depending on the encoding, the parameters end up in the
// URL query string, a URL-encoded body, or a JSON body.
func Parameters(params map[string]interface{}, enc ParameterEncoding) Task {
	return Task{kind: TaskParameters, params: params, paramEnc: enc}
}

// CompositeData returns a task with a pre-built body plus URL query
// parameters.
func CompositeData(body []byte, query map[string]interface{}) Task {
	return Task{kind: TaskCompositeData, body: body, query: query}
}

// CompositeParameters returns a task with body parameters encoded by
// bodyEnc plus URL query parameters.
//
// The body encoding must target the body. A query-targeting encoding is
// rejected: the violation is recorded on the task and surfaced as an
// error by the endpoint resolver, never as a panic.
func CompositeParameters(bodyParams map[string]interface{}, bodyEnc ParameterEncoding, query map[string]interface{}) Task {
	t := Task{
		kind:     TaskCompositeParameters,
		params:   bodyParams,
		paramEnc: bodyEnc,
		query:    query,
	}
	if bodyEnc == nil || bodyEnc.Destination() != DestinationBody {
		t.err = errCompositeBodyEncoding
	}
	return t
}

// UploadFile returns a task that uploads the local file at path as the
// request body. The transport owns reading the file and sniffing its
// media type.
func UploadFile(path string) Task {
	return Task{kind: TaskUploadFile, filePath: path}
}

// UploadMultipart returns a task whose body is a multipart form built
// from parts, in order, by the transport's multipart writer.
func UploadMultipart(parts ...MultipartPart) Task {
	return Task{kind: TaskUploadMultipart, parts: parts}
}

// UploadMultipartWithQuery is like UploadMultipart but additionally
// encodes query onto the URL.
func UploadMultipartWithQuery(parts []MultipartPart, query map[string]interface{}) Task {
	return Task{kind: TaskUploadMultipart, parts: parts, query: query}
}

// Download returns a task whose response body is written to the
// destination chosen by sel.
func Download(sel DestinationSelector) Task {
	return Task{kind: TaskDownload, selector: sel}
}

// DownloadWithParameters is like Download but additionally applies
// params to the draft using enc, exactly as Parameters would.
func DownloadWithParameters(sel DestinationSelector, params map[string]interface{}, enc ParameterEncoding) Task {
	return Task{kind: TaskDownload, selector: sel, params: params, paramEnc: enc}
}

// Kind returns the active case of the task.
func (t Task) Kind() TaskKind { return t.kind }

// Body returns the pre-built body bytes of a RawBytes or CompositeData
// task.
func (t Task) Body() []byte { return t.body }

// Object returns the model value of an Encodable task.
func (t Task) Object() interface{} { return t.object }

// Encoder returns the custom encoder of an Encodable task, or nil if
// the globally configured encoder should be used.
func (t Task) Encoder() codec.Encoder { return t.encoder }

// Params returns the parameter map of a Parameters, CompositeParameters
// or Download task.
func (t Task) Params() map[string]interface{} { return t.params }

// Encoding returns the parameter encoding of a Parameters,
// CompositeParameters or Download task.
func (t Task) Encoding() ParameterEncoding { return t.paramEnc }

// Query returns the URL query parameter map of a CompositeData,
// CompositeParameters or UploadMultipartWithQuery task.
func (t Task) Query() map[string]interface{} { return t.query }

// FilePath returns the local path of an UploadFile task.
func (t Task) FilePath() string { return t.filePath }

// Parts returns the ordered multipart parts of an UploadMultipart task.
func (t Task) Parts() []MultipartPart { return t.parts }

// Selector returns the destination selector of a Download task.
func (t Task) Selector() DestinationSelector { return t.selector }

// Err returns the construction-time validation error recorded on the
// task, if any. The endpoint resolver surfaces it.
func (t Task) Err() error { return t.err }

type partKind int

const (
	partBytes partKind = iota
	partFile
	partStream
)

// A MultipartPart is one part of a multipart upload task.
//
// FileName and MIMEType are required by the wire format for file and
// stream parts; for byte parts used as plain form fields they are
// optional. FilePart derives a missing FileName from the path and
// leaves MIME sniffing to the transport.
type MultipartPart struct {
	kind   partKind
	data   []byte
	path   string
	reader io.Reader
	length int64

	// FieldName is the multipart form field name.
	FieldName string
	// FileName is the file name reported for the part, if any.
	FileName string
	// MIMEType is the Content-Type reported for the part, if any.
	MIMEType string
}

// BytesPart returns a part holding in-memory bytes. With no file name
// set it is written as a plain form field.
func BytesPart(field string, data []byte) MultipartPart {
	return MultipartPart{kind: partBytes, data: data, FieldName: field}
}

// FilePart returns a part whose content is read from the local file at
// path. The file name defaults to the path's base name.
func FilePart(field, path string) MultipartPart {
	return MultipartPart{
		kind:      partFile,
		path:      path,
		FieldName: field,
		FileName:  filepath.Base(path),
	}
}

// StreamPart returns a part whose content is read from r. The length,
// file name and MIME type must be supplied because a stream cannot be
// inspected without consuming it.
func StreamPart(field string, r io.Reader, length int64, fileName, mimeType string) MultipartPart {
	return MultipartPart{
		kind:      partStream,
		reader:    r,
		length:    length,
		FieldName: field,
		FileName:  fileName,
		MIMEType:  mimeType,
	}
}

// Data returns the in-memory bytes of a bytes part.
func (p MultipartPart) Data() []byte { return p.data }

// Path returns the local path of a file part.
func (p MultipartPart) Path() string { return p.path }

// Reader returns the content reader of a stream part.
func (p MultipartPart) Reader() io.Reader { return p.reader }

// Length returns the declared content length of a stream part.
func (p MultipartPart) Length() int64 { return p.length }

// IsFile reports whether the part's content comes from a local file.
func (p MultipartPart) IsFile() bool { return p.kind == partFile }

// IsStream reports whether the part's content comes from a reader.
func (p MultipartPart) IsStream() bool { return p.kind == partStream }

// DownloadOptions control how a downloaded file is moved to its final
// destination.
type DownloadOptions struct {
	// OverwriteExisting replaces an existing file at the destination.
	OverwriteExisting bool
	// CreateIntermediateDirectories creates missing parent directories
	// of the destination.
	CreateIntermediateDirectories bool
}

// A DestinationSelector chooses the final destination of a download
// task. It receives the temporary location the response body was
// buffered to and the transport's response metadata, and returns the
// final path together with write options.
type DestinationSelector func(tmpPath string, resp *http.Response) (string, DownloadOptions)
