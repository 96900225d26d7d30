package dto

type RegisterInput struct {
	DisplayName string `json:"displayName" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=30,alphanumunderscore"`
	Password    string `json:"password" validate:"required,min=8,max=100"`
}
