package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	View      key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Add       key.Binding
	Refresh   key.Binding
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	formFocused bool
	editing     bool
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		View:      key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("v", "view")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Add:       key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a", "add")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap; the bindings shown follow the focus.
func (k keyMap) ShortHelp() []key.Binding {
	if k.formFocused {
		back := k.Back
		if k.editing {
			back.SetHelp("esc", "cancel")
		}
		return []key.Binding{k.NextField, k.Submit, back}
	}
	return []key.Binding{k.Up, k.Down, k.View, k.Edit, k.Delete, k.Add, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
