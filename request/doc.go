// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the declarative core types of the reqx
library: Descriptor (describes a logical HTTP request), Task (describes
how the request body and parameters are constructed), and Draft (the
wire request produced by endpoint resolution).

The first core type is Descriptor, an immutable chainable builder.
Every mutator is a pure function that returns a new descriptor value,
so a descriptor can be shared as a template across goroutines and
specialized without copy ceremony:

	base := request.New("/users").ValidateSuccess()
	get := base.Get()
	post := base.Post().WithTask(request.Encodable(user))

The second core type is Task, a tagged union with exactly one active
case. The case determines which encoding path the endpoint resolver
takes: no body (Plain), a pre-built body (RawBytes, CompositeData), an
encoded model (Encodable), an encoded parameter map (Parameters,
CompositeParameters), file content (UploadFile, UploadMultipart), or a
download destination (Download).

The third core type is Draft, a stripped-down wire request with a
pre-buffered []byte body, named and typed consistently with
http.Request wherever possible. The root reqx package resolves a
Descriptor into a Draft, runs it through the plugin chain and hands it
to the transport. You will typically not allocate Draft instances
yourself; work with the ones handed to plugin hooks.
*/
package request
