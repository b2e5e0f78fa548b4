// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrIncomplete reports that a byte prefix does not yet contain one
// complete protocol value. It is not a protocol error: the caller
// keeps the bytes and retries after the next read.
var ErrIncomplete = errors.New("wire: incomplete value")

// Encode returns the wire bytes for a message. Ping encodes as the
// bare scalar "Ping"; every other variant encodes as a single-key
// object tagged with the variant name. Unknown values are decode-only
// and cannot be encoded.
func Encode(message Message) ([]byte, error) {
	switch value := message.(type) {
	case Ping:
		return []byte(`"Ping"`), nil
	case Text:
		return tagged("Text", value)
	case Join:
		return tagged("Join", value)
	case Name:
		return tagged("Name", value)
	case Leave:
		return tagged("Leave", value)
	case List:
		return tagged("List", value)
	case Info:
		return tagged("Info", value.Text)
	case Err:
		return tagged("Err", value.Text)
	case Logout:
		return tagged("Logout", value.Message)
	case Query:
		return tagged("Query", value)
	case Unknown:
		return nil, fmt.Errorf("wire: cannot encode unknown value with tag %q", value.Tag)
	default:
		return nil, fmt.Errorf("wire: cannot encode %T", message)
	}
}

func tagged(tag string, payload any) ([]byte, error) {
	data, err := json.Marshal(map[string]any{tag: payload})
	if err != nil {
		return nil, fmt.Errorf("wire: encode %s: %w", tag, err)
	}
	return data, nil
}

// DecodeFirst decodes the first complete protocol value from data and
// returns it together with the exact number of bytes consumed,
// including any leading whitespace. The caller advances its buffer by
// that count and may call DecodeFirst again on the remainder; values
// concatenated with no delimiter decode correctly because each call
// consumes only the bytes belonging to its own value.
//
// When data holds only a prefix of a value, DecodeFirst returns
// ErrIncomplete and consumes nothing. Malformed input that can never
// become a valid value is a hard error.
func DecodeFirst(data []byte) (Message, int, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			// The buffer ends mid-value. Not an error: the caller
			// keeps the bytes and retries after the next read.
			return nil, 0, ErrIncomplete
		}
		return nil, 0, fmt.Errorf("wire: malformed value: %w", err)
	}
	consumed := int(decoder.InputOffset())

	message, err := fromRaw(raw)
	if err != nil {
		return nil, consumed, err
	}
	return message, consumed, nil
}

// fromRaw maps one well-formed JSON value onto the Message variants.
func fromRaw(raw json.RawMessage) (Message, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("wire: empty value")
	}

	// Bare scalar form: only the Ping keepalive uses it.
	if trimmed[0] == '"' {
		var scalar string
		if err := json.Unmarshal(trimmed, &scalar); err != nil {
			return nil, fmt.Errorf("wire: malformed scalar: %w", err)
		}
		if scalar == "Ping" {
			return Ping{}, nil
		}
		return Unknown{Tag: scalar}, nil
	}

	if trimmed[0] != '{' {
		return Unknown{Tag: string(trimmed)}, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("wire: malformed envelope: %w", err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("wire: value must carry exactly one tag, got %d", len(envelope))
	}

	for tag, payload := range envelope {
		return decodePayload(tag, payload)
	}
	panic("unreachable")
}

func decodePayload(tag string, payload json.RawMessage) (Message, error) {
	var err error
	switch tag {
	case "Text":
		var value Text
		err = json.Unmarshal(payload, &value)
		return value, wrapDecode(tag, err)
	case "Join":
		var value Join
		err = json.Unmarshal(payload, &value)
		return value, wrapDecode(tag, err)
	case "Name":
		var value Name
		err = json.Unmarshal(payload, &value)
		return value, wrapDecode(tag, err)
	case "Leave":
		var value Leave
		err = json.Unmarshal(payload, &value)
		return value, wrapDecode(tag, err)
	case "List":
		var value List
		err = json.Unmarshal(payload, &value)
		return value, wrapDecode(tag, err)
	case "Info":
		var text string
		err = json.Unmarshal(payload, &text)
		return Info{Text: text}, wrapDecode(tag, err)
	case "Err":
		var text string
		err = json.Unmarshal(payload, &text)
		return Err{Text: text}, wrapDecode(tag, err)
	case "Logout":
		var text string
		err = json.Unmarshal(payload, &text)
		return Logout{Message: text}, wrapDecode(tag, err)
	case "Query":
		var value Query
		err = json.Unmarshal(payload, &value)
		return value, wrapDecode(tag, err)
	default:
		return Unknown{Tag: tag}, nil
	}
}

func wrapDecode(tag string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("wire: decode %s payload: %w", tag, err)
}
