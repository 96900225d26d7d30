package constant

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

const (
	// DefaultAccessExpiryMin is the access token lifetime in minutes.
	DefaultAccessExpiryMin = 15
	// DefaultRefreshExpiryMin is the refresh token lifetime in minutes (7 days).
	DefaultRefreshExpiryMin = 10080
)

const RefreshTokenCookie = "refreshToken"
