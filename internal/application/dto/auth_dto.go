package dto

// LoginRequest cuerpo de POST /api/login.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Remember bool   `json:"remember" form:"remember"`
}

// LoginResponse respuesta exitosa de POST /api/login. Token puede venir vacío.
type LoginResponse struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

// CheckResponse respuesta de GET /api/check.
type CheckResponse struct {
	Authenticated bool `json:"authenticated"`
}

// LoginResult resultado del flujo de login del lado cliente.
type LoginResult struct {
	Username      string
	Durable       bool   // el token quedó en el almacén durable ("recordarme")
	LandingPath   string // destino tras el login
	RedirectDelay int64  // milisegundos antes de navegar
	Message       string
}
