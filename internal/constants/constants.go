package constants

// Centralized constants for env keys, routes, responses and log fields.
const (
	// Environment variable keys
	EnvConfigPath = "POKEBATTLE_CONFIG"
	EnvDBPath     = "POKEBATTLE_DB"
	EnvLogLevel   = "POKEBATTLE_LOG_LEVEL"

	DefaultConfigPath = "./pokebattle_config.json"
	DefaultDBPath     = "./data/pokebattle.db"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteHealth         = "/healthz"
	RouteAPIPrefix      = "/api"
	RouteVersion        = "/version"
	RouteBattles        = "/battles"
	RouteBattleByID     = "/battles/:battleID"
	RouteBattleActions  = "/battles/:battleID/actions"
	RouteBattleStream   = "/battles/:battleID/stream"
	RouteLeaderboard    = "/leaderboard"
	RoutePlayerStats    = "/players/:name/stats"
	RouteDexSpecies     = "/dex/species"
	ParamBattleID       = "battleID"
	ParamPlayerName     = "name"
	QueryEventsSince    = "since"
	QueryLimit          = "limit"
	DefaultLeaderboard  = 10
	MaxLeaderboardLimit = 100
)

// Common JSON response keys
const (
	JSONKeyError    = "error"
	JSONKeyMessage  = "message"
	JSONKeyDetails  = "details"
	JSONKeyBattleID = "battle_id"
	JSONKeyEvents   = "events"
	JSONKeyNext     = "next"
	JSONKeyPending  = "pending"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidBattleID        = "Invalid battle ID"
	ErrBattleNotFound         = "Battle not found"
	ErrFailedCreateBattle     = "Failed to create battle"
	ErrFailedLoadBattle       = "Failed to load battle"
	ErrFailedStoreAction      = "Failed to store action"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrInvalidSince           = "since must be a non-negative integer"
	ErrInvalidAction          = "Invalid action"
	ErrFailedStreamEvents     = "Failed to stream events"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldPlayer   = "player"
	LogFieldAction   = "action"
	LogFieldState    = "state"
	LogFieldWinner   = "winner"
	LogFieldLoser    = "loser"
	LogFieldEvents   = "events"
	LogFieldCount    = "count"
	LogFieldAddr     = "addr"
	LogFieldDriver   = "driver"
	LogFieldURL      = "url"
	LogFieldStatus   = "status"
	LogFieldIdle     = "idle"
	LogFieldError    = "error"
)
