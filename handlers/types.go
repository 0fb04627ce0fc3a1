package handlers

import "github.com/lizet96/consultorio-backend/models"

// Response es el sobre de todas las respuestas JSON
type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Token   string      `json:"token,omitempty"`
}

// PageResponse es una lista paginada: status más los campos de models.Page
// (data, current_page, per_page, total, last_page) al mismo nivel.
type PageResponse[T any] struct {
	Status bool `json:"status"`
	*models.Page[T]
}

const (
	msgInternal     = "Internal server error"
	msgInvalidBody  = "The request body must be a valid JSON object."
	msgUnauthorized = "Unauthorized"
)
