package constants

// Centralized constants for env keys, routes and shared error messages.
const (
	// Environment variable keys
	EnvVerificationSecret = "GAME_VERIFICATION_SECRET"
	EnvDBPath             = "BALANCE_DB"
	EnvConfigPath         = "BALANCE_CONFIG"
	EnvServerAddress      = "BALANCE_ADDR"

	// Defaults
	DefaultConfigPath = "./balance_config.json"
	DefaultDBPath     = "./data/balance.db"
	DefaultAddress    = ":8080"
)

// Game tuning. These mirror the original game configuration and are the
// single source of truth for round arithmetic.
const (
	TotalRounds = 30

	ModifierPhase1End   = 10 // rounds 1-10: vectors applied unmodified
	ModifierPhase2End   = 20 // rounds 11-20: subtract 1 from nonzero components
	ModifierPhase2Value = 1
	ModifierPhase3Value = 2 // rounds 21-30: subtract 2

	ActionChoicesEarly = 3 // rounds 1-20
	ActionChoicesLate  = 2 // rounds 21-30

	SpecialEventSuccessRate = 0.10
)

// Submission validation bounds.
const (
	NameMinLength = 2
	NameMaxLength = 50

	MinGameDurationSeconds = 10
	MaxGameDurationSeconds = 7200

	// Duration plausibility window: max(DurationToleranceFloorSeconds,
	// claimed * DurationTolerancePercent / 100).
	DurationTolerancePercent      = 10
	DurationToleranceFloorSeconds = 10

	// Delimiter for the HMAC signing message.
	SignatureDelimiter = "|"
)

// Routes used by the backend router.
const (
	RouteAPIPrefix   = "/api"
	RouteSubmitScore = "/submit-score"
	RouteLeaderboard = "/leaderboard"
	RouteVersion     = "/version"
)

// Common JSON response keys.
const (
	JSONKeySuccess    = "success"
	JSONKeyError      = "error"
	JSONKeyData       = "data"
	JSONKeyPagination = "pagination"
)

// Common error messages used across API handlers. Integrity failures all
// surface the same generic message so a client cannot probe which check
// rejected the request.
const (
	ErrInvalidRequest    = "Invalid request"
	ErrMissingFields     = "Missing required fields"
	ErrInvalidPagination = "Invalid pagination parameters"
	ErrInvalidTimestamps = "Invalid timestamps"
	ErrEndBeforeStart    = "End time must be after start time"
	ErrNameLengthFmt     = "Name must be between %d-%d characters"
	ErrNameNotAllowed    = "Name contains disallowed words"
	ErrServerConfig      = "Server configuration error"
	ErrFailedSaveScore   = "Failed to save score"
	ErrFailedLeaderboard = "Failed to fetch leaderboard"
)

// Logging field names.
const (
	LogFieldAddr      = "addr"
	LogFieldSessionID = "session_id"
	LogFieldNonce     = "game_session_id"
	LogFieldEnding    = "ending"
	LogFieldRound     = "round"
	LogFieldRecordID  = "record_id"
)
