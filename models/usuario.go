package models

import (
	"time"
)

// Usuario representa la tabla users en la base de datos
type Usuario struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest representa la solicitud de registro
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest representa la solicitud de login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
