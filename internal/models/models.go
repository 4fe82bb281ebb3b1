package models

// AppState holds the shell's layout state
type AppState struct {
	Width       int
	Height      int
	DrawerWidth int
	FocusedPane PaneType
	ViewMode    ViewMode
	DrawerOpen  bool
}

// PaneType identifies which pane receives keys
type PaneType int

const (
	GridPane PaneType = iota
	DrawerPane
)

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:       80,
		Height:      24,
		DrawerWidth: 40,
		FocusedPane: GridPane,
		ViewMode:    NormalMode,
	}
}
