// Package memory adaptadores en memoria de los repositorios de dominio.
package memory

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Promedio-api/internal/domain/entity"
)

// DefaultUsers usuarios semilla del autenticador de desarrollo (usuario:clave:rol).
const DefaultUsers = "admin:admin123:admin,test:test123:user,user:user123:user"

// UserRepository implementa repository.UserRepository sobre un mapa de solo lectura.
type UserRepository struct {
	users map[string]*entity.User
}

// NewUserRepository construye el repositorio a partir de "usuario:clave[:rol],...".
// Vacío usa DefaultUsers. Las claves se guardan con bcrypt.
func NewUserRepository(spec string) (*UserRepository, error) {
	if strings.TrimSpace(spec) == "" {
		spec = DefaultUsers
	}
	repo := &UserRepository{users: make(map[string]*entity.User)}
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("memory: usuario mal formado %q (usuario:clave[:rol])", item)
		}
		role := entity.RoleUser
		if len(parts) > 2 && parts[2] != "" {
			role = parts[2]
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(parts[1]), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("memory: hash de %s: %w", parts[0], err)
		}
		repo.users[parts[0]] = &entity.User{Username: parts[0], PasswordHash: string(hash), Role: role}
	}
	return repo, nil
}

// FindByUsername devuelve una copia del usuario o nil si no existe.
func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// Len cantidad de usuarios cargados.
func (r *UserRepository) Len() int { return len(r.users) }
