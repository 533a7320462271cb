// Package common contains shared constants and sentinel errors used across
// the study planner server and CLI.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix prefixes the access token in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// Knowledge levels accepted by the planner.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// DefaultLearningStyle is assigned to users who did not pick one.
const DefaultLearningStyle = "mixed"
