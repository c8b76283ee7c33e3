package constants

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyProject   = "project"
	ContextKeyIsOwner   = "is_owner"
	ContextKeyTask      = "task"
	ContextKeyRequestID = "request_id"
)

// Authentication
const (
	AuthCookieName   = "auth_token"
	AuthCookieMaxAge = 86400 * 7 // 7 days, matches token expiry

	MinPasswordLength = 6
	MaxPasswordLength = 100
	MinNameLength     = 2
	MaxNameLength     = 50
)

// Entity limits
const (
	MinProjectNameLength  = 2
	MaxProjectNameLength  = 100
	MaxProjectDescription = 500
	MinTaskTitleLength    = 2
	MaxTaskTitleLength    = 200
	MaxTaskDescription    = 2000
)

// Activity feed
const (
	DefaultActivityLimit = 20
	MaxActivityLimit     = 100
)

// AI task generation
const MaxAIGeneratedTasks = 20
