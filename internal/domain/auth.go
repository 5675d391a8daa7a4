package domain

// Credentials are submitted to /auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the backend's view of the authenticated operator.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Session is a bearer token plus the decoded user snapshot it encodes.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
