package entity

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User usuario aceptado por el autenticador de desarrollo.
type User struct {
	Username     string
	PasswordHash string // bcrypt hash, nunca plano
	Role         string // admin, user
}
