package constants

// Centralized constants for env keys, routes and user-facing messages.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvOpenWeatherAPIKey   = "OPENWEATHER_API_KEY"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "POKEBATTLE_CONFIG"
	EnvDBPath              = "POKEBATTLE_DB"

	// Session / Cookie names
	CookieSessionName = "pb_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteHealthz            = "/healthz"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteCreatures          = "/creatures"
	RouteLeaderboard        = "/leaderboard"
	RouteTeams              = "/teams"
	RouteBattles            = "/battles"
	RouteBattleByID         = "/battles/:battleID"
	RouteBattleAction       = "/battles/:battleID/action"
	RouteBattleAnswer       = "/battles/:battleID/answer"
	RouteBattleForfeit      = "/battles/:battleID/forfeit"
	// Kept outside /battles/:battleID to avoid a wildcard conflict in the
	// router tree.
	RouteBattleQuick = "/quick-battles"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrAuthRequired     = "Authentication required"
	ErrInvalidSession   = "Invalid session"
	ErrBattleNotFound   = "Battle not found"
	ErrBattleFinished   = "Battle already finished"
	ErrChallengePending = "A hack challenge is pending; answer it first"
	ErrNoChallenge      = "No active challenge for this battle"
	ErrTurnConflict     = "This turn was already resolved"
	ErrInvalidMove      = "Invalid move index"
	ErrEmptyAnswer      = "Answer must not be empty"
	ErrTeamNotFound     = "Team not found"
	ErrTeamNotYours     = "Team does not belong to you"
	ErrTeamEmpty        = "Team has no members"
	ErrFailedFetchData  = "Failed to fetch data"
	ErrFailedSaveTeam   = "Failed to save team"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
)
