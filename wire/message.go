// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// Message is one grel protocol value. The set of implementations is
// closed: every variant lives in this package and carries the
// unexported marker method, so a switch over the concrete types can be
// exhaustive and the compiler flags any call site missed when a
// variant is added.
type Message interface {
	isMessage()
}

// Compile-time variant checks.
var (
	_ Message = Ping{}
	_ Message = Text{}
	_ Message = Join{}
	_ Message = Name{}
	_ Message = Leave{}
	_ Message = List{}
	_ Message = Info{}
	_ Message = Err{}
	_ Message = Logout{}
	_ Message = Query{}
	_ Message = Unknown{}
)

// Ping is the keepalive value, sent in both directions. On the wire it
// is the bare scalar "Ping" rather than a tagged object.
type Ping struct{}

// Text carries chat text: one or more logical lines from a single
// sender. The client displays one scrollback line per payload line,
// each prefixed with the sender's name.
type Text struct {
	Who   string   `json:"who"`
	Lines []string `json:"lines"`
}

// Join announces that a user entered a room. Outgoing, it is the join
// request itself (Who empty, What the target room).
type Join struct {
	Who  string `json:"who"`
	What string `json:"what"`
}

// Name announces a display-name change. Outgoing, it is the rename
// request itself (Who empty, New the requested name).
type Name struct {
	Who string `json:"who"`
	New string `json:"new"`
}

// Leave announces that a user left, with their parting message.
type Leave struct {
	Who     string `json:"who"`
	Message string `json:"message"`
}

// List carries an ordered collection from the server. What identifies
// the collection; "roster" replaces the client's roster pane
// wholesale, anything else is displayed as a notice.
type List struct {
	What  string   `json:"what"`
	Items []string `json:"items"`
}

// Info is a non-error notice from the server. Encoded as a newtype:
// {"Info": "text"}.
type Info struct {
	Text string
}

// Err is an error notice from the server. Encoded as {"Err": "text"}.
type Err struct {
	Text string
}

// Logout ends the session. Incoming, it carries the server's parting
// message and the client terminates normally. Outgoing, it is the quit
// request with the user's leave message.
type Logout struct {
	Message string
}

// Query is an outgoing request for server state, such as
// {what: "roster"} for the current room's user list or
// {what: "who", arg: prefix} for a filtered name search.
type Query struct {
	What string `json:"what"`
	Arg  string `json:"arg"`
}

// Unknown is any well-formed value whose tag is not in the closed set
// above. It exists so forward-compatibility is a dispatch policy
// rather than a decode error.
type Unknown struct {
	Tag string
}

func (Ping) isMessage()    {}
func (Text) isMessage()    {}
func (Join) isMessage()    {}
func (Name) isMessage()    {}
func (Leave) isMessage()   {}
func (List) isMessage()    {}
func (Info) isMessage()    {}
func (Err) isMessage()     {}
func (Logout) isMessage()  {}
func (Query) isMessage()   {}
func (Unknown) isMessage() {}
