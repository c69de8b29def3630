package domain

import "time"

// Seller is the credential owner for password recovery.
// Role is fixed to RoleSeller at creation and never inferred from profile fields.
type Seller struct {
	SellerID     string       `json:"id" dynamodbav:"seller_id"`
	Email        string       `json:"email" dynamodbav:"email"`
	Phone        *string      `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	ShopName     string       `json:"shop_name" dynamodbav:"shop_name"`
	PasswordHash string       `json:"-" dynamodbav:"password_hash"`
	Role         string       `json:"role" dynamodbav:"role"`
	Status       SellerStatus `json:"status" dynamodbav:"status"`
	CreatedAt    time.Time    `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time    `json:"updated" dynamodbav:"updated_at"`
}
