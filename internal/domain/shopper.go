package domain

import "time"

// Shopper is a storefront customer signed in through Google.
type Shopper struct {
	UserID          string    `json:"id" dynamodbav:"user_id"`
	Email           string    `json:"email" dynamodbav:"email"`
	GoogleSub       string    `json:"-" dynamodbav:"google_sub"`
	FirstName       string    `json:"first_name" dynamodbav:"first_name"`
	LastName        string    `json:"last_name" dynamodbav:"last_name"`
	Phone           *string   `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	ProfileComplete bool      `json:"profile_complete" dynamodbav:"profile_complete"`
	CreatedAt       time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updated" dynamodbav:"updated_at"`
}
