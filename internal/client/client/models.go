package client

// User mirrors the GraphQL User type.
type User struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// AuthPayload is returned by signup, login and refreshToken.
type AuthPayload struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}
