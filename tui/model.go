package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cmtui/manager"
	"cmtui/session"
)

type uiState int

const (
	stateMenu uiState = iota
	statePicker
	stateDest
	stateConfirm
	stateSearch
	stateResults
)

// menuItems are the top-level actions, in display order.
var menuItems = []string{
	"Migrate a session",
	"Search sessions",
	"Refresh session list",
	"Quit",
}

// Model is the interactive UI. It owns a context that is cancelled on quit
// so in-flight commands against the external tool are torn down with it.
type Model struct {
	mgr    *manager.Manager
	ctx    context.Context
	cancel context.CancelFunc

	theme Theme
	keys  keyMap

	state  uiState
	cursor int

	// statePicker
	pickable []session.Session

	// stateDest / stateConfirm
	target  session.Session
	destDir string
	input   textinput.Model

	// stateSearch / stateResults
	searchInput textinput.Model
	query       string
	results     []session.SearchResult

	loading bool
	status  string
	width   int
}

// NewModel builds the UI around an already-constructed manager. The
// manager's registry may be empty; Init schedules the first load.
func NewModel(mgr *manager.Manager) Model {
	ctx, cancel := context.WithCancel(context.Background())

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 512

	searchInput := textinput.New()
	searchInput.Prompt = "> "
	searchInput.Placeholder = "keywords"
	searchInput.CharLimit = 256

	return Model{
		mgr:         mgr,
		ctx:         ctx,
		cancel:      cancel,
		theme:       DefaultTheme(),
		keys:        defaultKeyMap(),
		state:       stateMenu,
		input:       input,
		searchInput: searchInput,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// quit cancels the model context and stops the program.
func (m Model) quit() (Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}
