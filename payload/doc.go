// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package payload encodes request bodies.

A Payload is a tagged variant with one constructor per kind of body:
None, Form, JSON, Bytes, Text, Value, File, and Stream. An Encoder turns
a Payload into a Body, deciding the content type to send (unless the
caller set one explicitly) and the transfer length, and optionally
compressing the body with gzip.

	enc := payload.Encoder{Compress: true}
	body, err := enc.Encode(payload.JSON(map[string]interface{}{"id": 1}))
	...

Buffered bodies are compressed only when compression is worthwhile: the
body must be longer than MinCompressedAdvantage bytes, and the gzip form
must save more than MinCompressedAdvantage bytes. Otherwise the body is
sent as is and no Content-Encoding is reported. Streamed bodies (files
and readers) are always compressed when requested, and their length is
then unknown, so they are sent chunked.
*/
package payload
