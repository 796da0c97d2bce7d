package models

// UIState is the rendered state of one query cycle. The core owns it and
// pushes copies to the UI after every change.
type UIState struct {
	Loading        bool
	SubmitEnabled  bool
	ErrorMessage   string
	ErrorVisible   bool
	ResultsVisible bool
	Fields         [4]string // indexed by Field
}

// InitialUIState is the state before the first query.
func InitialUIState() UIState {
	return UIState{SubmitEnabled: true}
}

// Focus selects which widget receives key presses.
type Focus int

const (
	FocusInput Focus = iota
	FocusSubmit
)

// NoticeType distinguishes banner lines.
type NoticeType int

const (
	Program NoticeType = iota
	Hint
)

// Notice is a static banner line shown above the input.
type Notice struct {
	Content string
	Type    NoticeType
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Notices     []Notice // Banner lines
	Input       string   // User input field
	Focus       Focus    // Input field or submit button
	Query       UIState  // Latest snapshot from core
	Status      string   // Status bar text
	LoadingDots int      // Animation counter for loading dots
	Width       int      // Terminal width
	Height      int      // Terminal height
	Ready       bool     // Whether the query service is available
	Resubmit    bool     // Whether a new query may replace one in flight
}
