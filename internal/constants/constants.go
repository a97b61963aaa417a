package constants

const (
	// Session / context keys
	SessionCookieName  = "diary_session"
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyJournal  = "shared_journal_id"
	ContextKeyStory    = "relay_story"

	// Credentials
	MinUsernameLength = 2
	MaxUsernameLength = 50
	MinPasswordLength = 6

	// Shared journals hold the owner plus 1-4 invitees.
	MinSharedInvitees = 1
	MaxSharedInvitees = 4

	// Relay stories need at least one invitee besides the owner.
	MinRelayInvitees = 1

	DefaultSharedTitle = "Untitled diary"
	DefaultRelayTitle  = "Untitled story"

	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
