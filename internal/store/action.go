package store

// Action is a state transition request. Async operations emit three actions
// sharing a type prefix: <prefix>/pending, <prefix>/fulfilled and <prefix>/rejected.
type Action struct {
	Type    string
	Payload any
	Error   string
	Meta    ActionMeta
}

// ActionMeta links the phases of one async operation.
type ActionMeta struct {
	RequestID string
	Arg       any
}

const (
	phasePending   = "/pending"
	phaseFulfilled = "/fulfilled"
	phaseRejected  = "/rejected"
)

// Synchronous action types.
const (
	ActionAuthLogout   = "auth/logout"
	ActionAuthClearErr = "auth/clearError"

	ActionChallengesSetFilter    = "challenges/setFilter"
	ActionChallengesClearFilters = "challenges/clearFilters"
	ActionChallengesClear        = "challenges/clearChallenges"

	ActionSubmissionsClearCurrent = "submissions/clearCurrentSubmission"
	ActionSubmissionsClearError   = "submissions/clearSubmissionError"

	ActionNotificationsAdd   = "notifications/addNotification"
	ActionNotificationsClear = "notifications/clearNotifications"

	ActionUIToggleDarkMode = "ui/toggleDarkMode"
	ActionUISetDarkMode    = "ui/setDarkMode"
	ActionUIToggleDrawer   = "ui/toggleDrawer"
	ActionUISetDrawerOpen  = "ui/setDrawerOpen"
	ActionUIShowSnackbar   = "ui/showSnackbar"
	ActionUIHideSnackbar   = "ui/hideSnackbar"
	ActionUISetLoading     = "ui/setLoading"
	ActionUISetMobile      = "ui/setMobile"
)

// Async operation type prefixes.
const (
	PrefixLogin          = "auth/login"
	PrefixRegister       = "auth/register"
	PrefixGetUserProfile = "auth/getUserProfile"

	PrefixFetchChallenges            = "challenges/fetchChallenges"
	PrefixFetchChallengeByID         = "challenges/fetchChallengeById"
	PrefixFetchRecommendedChallenges = "challenges/fetchRecommendedChallenges"

	PrefixFetchUserSubmissions = "submissions/fetchUserSubmissions"
	PrefixFetchSubmissionByID  = "submissions/fetchSubmissionById"
	PrefixCreateSubmission     = "submissions/createSubmission"
	PrefixUpdateSubmission     = "submissions/updateSubmission"
	PrefixEvaluateSubmission   = "submissions/evaluateSubmission"

	PrefixFetchNotifications = "notifications/fetchNotifications"
	PrefixFetchUnreadCount   = "notifications/fetchUnreadCount"
	PrefixMarkAsRead         = "notifications/markNotificationAsRead"
	PrefixMarkAllAsRead      = "notifications/markAllNotificationsAsRead"
)

// Pending returns the pending action type for prefix.
func Pending(prefix string) string { return prefix + phasePending }

// Fulfilled returns the fulfilled action type for prefix.
func Fulfilled(prefix string) string { return prefix + phaseFulfilled }

// Rejected returns the rejected action type for prefix.
func Rejected(prefix string) string { return prefix + phaseRejected }
