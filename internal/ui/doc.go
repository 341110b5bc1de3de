// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The (view) [Model] renders the synchronizer's filtered view as a list with a counts footer, and maps keys to
// operations:
//
//	space/x  toggle        a  add        e  edit        d  delete
//	tab      next filter   1/2/3  all, active, completed
//	y        copy text     r  reload     q  quit
//
// Operations run as commands off the update loop and report back through the [Msg] union type. Failures are
// logged and otherwise ignored; the list simply re-renders from whatever state the synchronizer kept.
package ui
