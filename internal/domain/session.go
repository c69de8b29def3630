package domain

import "time"

// Session is a shopper browsing session. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type Session struct {
	SessionID       string    `json:"id" dynamodbav:"session_id"`
	UserID          string    `json:"user_id" dynamodbav:"user_id"`
	Email           string    `json:"email" dynamodbav:"email"`
	ProfileComplete bool      `json:"profile_complete" dynamodbav:"profile_complete"`
	Enable          bool      `json:"enable" dynamodbav:"enable"`
	ExpiresAt       int64     `json:"expires_at" dynamodbav:"expires_at"`
	CreatedAt       time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Active reports whether the session is enabled and not past its expiry at now.
func (s *Session) Active(now time.Time) bool {
	return s.Enable && now.Unix() <= s.ExpiresAt
}
