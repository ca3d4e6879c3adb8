package components

import "github.com/charmbracelet/bubbles/key"

// SearchOverlayKeyMap defines key bindings for the search overlay
type SearchOverlayKeyMap struct {
	Escape key.Binding
	Enter  key.Binding
	Up     key.Binding
	Down   key.Binding
}

// DefaultSearchOverlayKeyMap returns the default search overlay key bindings
func DefaultSearchOverlayKeyMap() SearchOverlayKeyMap {
	return SearchOverlayKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open recipe"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/C-p", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/C-n", "next"),
		),
	}
}

// RecipePickerKeyMap defines key bindings for the recipe picker modal
type RecipePickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Clear  key.Binding
	Enter  key.Binding
	Escape key.Binding
}

// DefaultRecipePickerKeyMap returns the default recipe picker key bindings
func DefaultRecipePickerKeyMap() RecipePickerKeyMap {
	return RecipePickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear slot"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "assign"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Package-level key map instances
var (
	SearchOverlayKeys = DefaultSearchOverlayKeyMap()
	RecipePickerKeys  = DefaultRecipePickerKeyMap()
)
