package models

import "math"

const (
	DefaultPerPage = 5
	MaxPerPage     = 100
	// MaxPage mantiene (page-1)*perPage dentro de int
	MaxPage = math.MaxInt / MaxPerPage
)

// PageParams son los parámetros de paginación de una petición
type PageParams struct {
	Page    int
	PerPage int
}

// NewPageParams normaliza page y perPage: page entre 1 y MaxPage, perPage
// entre 1 y MaxPerPage. Una página fuera de rango queda vacía.
func NewPageParams(page, perPage int) PageParams {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// Offset devuelve el OFFSET de SQL para la página
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page es una página de resultados con sus metadatos
type Page[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewPage arma la página. LastPage nunca es menor que 1.
func NewPage[T any](data []T, params PageParams, total int64) *Page[T] {
	if data == nil {
		data = []T{}
	}
	lastPage := int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return &Page[T]{
		Data:        data,
		CurrentPage: params.Page,
		PerPage:     params.PerPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
