package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the editor keybindings
type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Add         key.Binding
	Remove      key.Binding
	Edit        key.Binding
	PosDown     key.Binding
	PosUp       key.Binding
	PosDownFast key.Binding
	PosUpFast   key.Binding
	Linear      key.Binding
	Radial      key.Binding
	Conic       key.Binding
	AngleDown   key.Binding
	AngleUp     key.Binding
	OpacityDown key.Binding
	OpacityUp   key.Binding
	Randomize   key.Binding
	CopyCSS     key.Binding
	CopyShare   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab/↓", "next stop"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("shift+tab/↑", "prev stop"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add stop"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove stop"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit color"),
		),
		PosDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "position -1"),
		),
		PosUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "position +1"),
		),
		PosDownFast: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "position -10"),
		),
		PosUpFast: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "position +10"),
		),
		Linear: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "linear"),
		),
		Radial: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "radial"),
		),
		Conic: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "conic"),
		),
		AngleDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "angle -5"),
		),
		AngleUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "angle +5"),
		),
		OpacityDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "opacity -5"),
		),
		OpacityUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "opacity +5"),
		),
		Randomize: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "randomize"),
		),
		CopyCSS: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy css"),
		),
		CopyShare: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "copy share link"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.Edit, k.Randomize, k.CopyCSS, k.CopyShare, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Add, k.Remove, k.Edit},
		{k.PosDown, k.PosUp, k.PosDownFast, k.PosUpFast},
		{k.Linear, k.Radial, k.Conic, k.AngleDown, k.AngleUp},
		{k.OpacityDown, k.OpacityUp, k.Randomize, k.CopyCSS, k.CopyShare},
		{k.Help, k.Quit},
	}
}
