package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// RoleUser usuário comum: lança transações e gerencia os próprios planos
	RoleUser = "user"
	// RoleAdmin administrador: aprova/rejeita transações e gerencia usuários
	RoleAdmin = "admin"
)

// User modelo de usuário
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:200;not null"`
	Email     string         `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"size:255;not null"`
	Role      string         `json:"role" gorm:"size:20;default:user;index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName define o nome da tabela
func (User) TableName() string {
	return "users"
}

// BeforeCreate assume o papel padrão quando não informado
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsAdmin indica se o usuário tem papel de administrador
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsValidRole verifica se o papel é conhecido
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
