package constants

// Centralized constants for headers, env keys and route paths.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvConfigPath          = "CLAD_CONFIG"
	EnvDBPath              = "CLAD_DB"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "clad_session"

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
	RouteVersion            = "/version"
	RouteCards              = "/cards"
	RouteCharacters         = "/characters"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RoutePlayerStats        = "/player-stats"
	RouteRooms              = "/rooms"
	RouteRoomByID           = "/rooms/:roomID"
	RouteRoomWatch          = "/rooms/:roomID/watch"
	RouteRoomIntent         = "/rooms/:roomID/intent"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidRoomID          = "Invalid room ID"
	ErrRoomNotFound           = "Room not found"
	ErrFailedFetchCards       = "Failed to fetch cards"
	ErrFailedFetchCharacters  = "Failed to fetch characters"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrEmailRequired          = "email is required"

	ErrFailedCreateRoom  = "Failed to create room"
	ErrRoomFinished      = "Match already finished"
	ErrPlayerNotInRoom   = "Player not in this room"
	ErrIntentRejected    = "Intent rejected"
	ErrUnknownIntentKind = "Unknown intent kind"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldRoomID = "room_id"
	LogFieldUserID = "user_id"
	LogFieldIntent = "intent"
	LogFieldCard   = "card"
	LogFieldAddr   = "addr"
)
