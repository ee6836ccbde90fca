package store

import "time"

// Severity colours a snackbar.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultSnackbarDuration applies when a snackbar is shown without a duration.
const DefaultSnackbarDuration = 6 * time.Second

func (s Severity) normalize() Severity {
	switch s {
	case SeveritySuccess, SeverityInfo, SeverityWarning, SeverityError:
		return s
	default:
		return SeverityInfo
	}
}

// Snackbar is a transient notice.
type Snackbar struct {
	Open     bool          `json:"open"`
	Message  string        `json:"message"`
	Severity Severity      `json:"severity"`
	Duration time.Duration `json:"duration"`
}

// SnackbarOptions configures ShowSnackbar.
type SnackbarOptions struct {
	Message  string
	Severity Severity
	Duration time.Duration
}

// UIState holds presentation flags.
type UIState struct {
	DarkMode   bool     `json:"dark_mode"`
	DrawerOpen bool     `json:"drawer_open"`
	Snackbar   Snackbar `json:"snackbar"`
	IsLoading  bool     `json:"is_loading"`
	IsMobile   bool     `json:"is_mobile"`
}

// ToggleDarkMode flips and persists the dark mode preference.
func (s *Store) ToggleDarkMode() {
	s.Dispatch(Action{Type: ActionUIToggleDarkMode})
}

// SetDarkMode sets and persists the dark mode preference.
func (s *Store) SetDarkMode(enabled bool) {
	s.Dispatch(Action{Type: ActionUISetDarkMode, Payload: enabled})
}

// ToggleDrawer flips the drawer.
func (s *Store) ToggleDrawer() {
	s.Dispatch(Action{Type: ActionUIToggleDrawer})
}

// SetDrawerOpen opens or closes the drawer.
func (s *Store) SetDrawerOpen(open bool) {
	s.Dispatch(Action{Type: ActionUISetDrawerOpen, Payload: open})
}

// ShowSnackbar opens a notice. Unknown severities fall back to info.
func (s *Store) ShowSnackbar(opts SnackbarOptions) {
	s.Dispatch(Action{Type: ActionUIShowSnackbar, Payload: opts})
}

// HideSnackbar closes the notice and keeps its message.
func (s *Store) HideSnackbar() {
	s.Dispatch(Action{Type: ActionUIHideSnackbar})
}

// SetLoading sets the global loading flag.
func (s *Store) SetLoading(loading bool) {
	s.Dispatch(Action{Type: ActionUISetLoading, Payload: loading})
}

// SetMobile sets the mobile layout flag.
func (s *Store) SetMobile(mobile bool) {
	s.Dispatch(Action{Type: ActionUISetMobile, Payload: mobile})
}

// SetViewportWidth reports a viewport measurement.
func (s *Store) SetViewportWidth(px int) {
	s.SetMobile(px < MobileBreakpoint)
}

func uiReducer(state UIState, action Action) UIState {
	switch action.Type {
	case ActionUIToggleDarkMode:
		state.DarkMode = !state.DarkMode
	case ActionUISetDarkMode:
		if v, ok := action.Payload.(bool); ok {
			state.DarkMode = v
		}
	case ActionUIToggleDrawer:
		state.DrawerOpen = !state.DrawerOpen
	case ActionUISetDrawerOpen:
		if v, ok := action.Payload.(bool); ok {
			state.DrawerOpen = v
		}
	case ActionUIShowSnackbar:
		if opts, ok := action.Payload.(SnackbarOptions); ok {
			duration := opts.Duration
			if duration <= 0 {
				duration = DefaultSnackbarDuration
			}
			state.Snackbar = Snackbar{
				Open:     true,
				Message:  opts.Message,
				Severity: opts.Severity.normalize(),
				Duration: duration,
			}
		}
	case ActionUIHideSnackbar:
		state.Snackbar.Open = false
	case ActionUISetLoading:
		if v, ok := action.Payload.(bool); ok {
			state.IsLoading = v
		}
	case ActionUISetMobile:
		if v, ok := action.Payload.(bool); ok {
			state.IsMobile = v
		}
	}
	return state
}

// SelectDarkMode reports whether dark mode is on.
func SelectDarkMode(state RootState) bool { return state.UI.DarkMode }

// SelectDrawerOpen reports whether the drawer is open.
func SelectDrawerOpen(state RootState) bool { return state.UI.DrawerOpen }

// SelectSnackbar returns the snackbar state.
func SelectSnackbar(state RootState) Snackbar { return state.UI.Snackbar }

// SelectUILoading returns the global loading flag.
func SelectUILoading(state RootState) bool { return state.UI.IsLoading }

// SelectIsMobile reports whether the mobile layout is active.
func SelectIsMobile(state RootState) bool { return state.UI.IsMobile }
