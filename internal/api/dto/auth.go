package dto

// RegisterRequest represents the registration request. Field presence is
// checked by the account service so all four fields report together.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateRequest represents the credential update body; the account email
// travels in the Email header.
type UpdateRequest struct {
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AuthResponse is returned by register, login and update.
type AuthResponse struct {
	Message   string `json:"message,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Token     string `json:"authtoken"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}
