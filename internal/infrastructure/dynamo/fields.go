package dynamo

// DynamoDB attribute names used in update expressions across all repos.
const (
	fieldEnable       = "enable"
	fieldUpdatedAt    = "updated_at"
	fieldPasswordHash = "password_hash"
	fieldStatus       = "status"
	fieldExpiresAt    = "expires_at"
)
