package dto

// CredentialsRequest is the body of /register and /login
type CredentialsRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// RegisterResponse represents a successful registration
type RegisterResponse struct {
	Mensaje string `json:"mensaje"`
	Usuario string `json:"usuario"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Mensaje string `json:"mensaje"`
	Token   string `json:"token"`
}

// ErrorResponse is returned for every failure
type ErrorResponse struct {
	Mensaje string `json:"mensaje"`
}
