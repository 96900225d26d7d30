package dto

type LoginInput struct {
	// Identifier matches either the email or the username.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}
