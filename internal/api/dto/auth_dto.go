package dto

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=255" example:"alice"`
	Password string `json:"password" binding:"required" example:"secret1"`
	ImageURL string `json:"imageUrl" binding:"required,max=1000" example:"https://cdn.example.com/alice.png"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"secret1"`
}
