package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	toggle    key.Binding
	add       key.Binding
	edit      key.Binding
	remove    key.Binding
	filter    key.Binding
	all       key.Binding
	active    key.Binding
	completed key.Binding
	copy      key.Binding
	reload    key.Binding
	submit    key.Binding
	cancel    key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		remove:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		filter:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		all:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		active:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		completed: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.add, k.edit, k.remove, k.filter, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle},
		{k.add, k.edit, k.remove},
		{k.filter, k.all, k.active, k.completed},
		{k.copy, k.reload, k.quit},
	}
}
