// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire defines the grel chat protocol values and their JSON
// encoding.
//
// A protocol value is one of a closed set of variants implementing the
// [Message] interface. On the wire each value is an externally tagged
// UTF-8 JSON object, {"Text": {"who": ..., "lines": [...]}}, except
// [Ping], which is the bare scalar "Ping". Values are concatenated
// back-to-back with no delimiter between them.
//
// [Encode] produces the byte form of a value. [DecodeFirst] is the
// inverse sequence primitive: it decodes the longest complete value
// from a byte prefix and reports exactly how many bytes it consumed,
// so a receive buffer can be advanced past one value and the next
// decode attempted on the remainder. When the prefix cannot yet form a
// complete value, DecodeFirst returns [ErrIncomplete] and the caller
// retains the buffer until more bytes arrive. Decoding is therefore
// insensitive to how the stream is chunked across reads.
//
// Tags not in the closed set decode to [Unknown] rather than an error,
// so the dispatcher can apply a single visible-notice policy to
// messages from newer servers.
package wire
