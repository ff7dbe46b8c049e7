// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rpc

import "github.com/ugorji/go/codec"

const JSONContentType = "application/json"

// handle honors json struct tags and sorts map keys, so identical results always encode identically
var handle = &codec.JsonHandle{
	BasicHandle: codec.BasicHandle{
		TypeInfos: codec.NewTypeInfos([]string{"json"}),
		EncodeOptions: codec.EncodeOptions{
			Canonical: true,
		},
	},
}

// Marshal encodes a result.  Times are written as RFC 3339 strings, and types implementing
// both halves of encoding.TextMarshaler/TextUnmarshaler are written as JSON strings.
func Marshal(v interface{}) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, handle).Encode(v); err != nil {
		return nil, err
	}

	return out, nil
}
