package models

type User struct {
	ID        ID     `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Credentials is the login request payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ProfileUpdate is a partial profile update; empty fields are omitted so the
// backend leaves them untouched.
type ProfileUpdate struct {
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AuthCheck is the response of GET /auth/check/.
type AuthCheck struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// AuthResponse is the response of the login and register endpoints.
type AuthResponse struct {
	User    *User  `json:"user"`
	Message string `json:"message,omitempty"`
}
