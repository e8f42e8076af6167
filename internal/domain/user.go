package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole представляет роль пользователя в системе
type UserRole string

const (
	RoleAdmin      UserRole = "admin"      // Администратор системы
	RoleOperator   UserRole = "operator"   // Оператор весовой
	RoleSupervisor UserRole = "supervisor" // Начальник смены
)

// User - сотрудник, работающий с весовой
// Идентификатор пользователя записывается в каждое событие аудита поездки
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Никогда не возвращаем в JSON
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone,omitempty"`
	Role         UserRole   `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanOperateWeighbridge проверяет, может ли пользователь проводить взвешивания
func (u *User) CanOperateWeighbridge() bool {
	return u.Role == RoleAdmin || u.Role == RoleOperator || u.Role == RoleSupervisor
}

// Validate проверяет корректность данных пользователя
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.FullName == "" {
		return ErrInvalidUserData
	}
	if u.Role != RoleAdmin && u.Role != RoleOperator && u.Role != RoleSupervisor {
		return ErrInvalidRole
	}
	return nil
}
