// Package models defines server-side data models persisted in the database
// and returned by the API.
package models

import "time"

// User is a registered learner.
type User struct {
	ID             string    `json:"id"`
	UserName       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	LearningStyle  string    `json:"learning_style"`
	KnowledgeLevel string    `json:"knowledge_level"`
	CreatedAt      time.Time `json:"created_at"`
}
