package dto

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CompanyID string `json:"company_id"`
	ServiceID string `json:"service_id"`
	Role      string `json:"role"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse token emitido tras login/registro.
type AuthResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	ServiceID string `json:"service_id,omitempty"`
	Role      string `json:"role"`
}
