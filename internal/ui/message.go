package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	op   string
	err  error
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgLoaded MsgKind = iota
	MsgMutated
	MsgCopied
)

// Kind reports which member of the union m is.
func (m Msg) Kind() MsgKind { return m.kind }

// Err is the error carried by m, if any.
func (m Msg) Err() error { return m.err }

// loadedMsg is the constructor for [MsgLoaded]
func loadedMsg(err error) Msg {
	return Msg{kind: MsgLoaded, op: "load", err: err}
}

// mutatedMsg is the constructor for [MsgMutated]
func mutatedMsg(op string, err error) Msg {
	return Msg{kind: MsgMutated, op: op, err: err}
}

// copiedMsg is the constructor for [MsgCopied]
func copiedMsg(err error) Msg {
	return Msg{kind: MsgCopied, op: "copy", err: err}
}
