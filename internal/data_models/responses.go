package dto

import model "activity-tracker.com/activity-tracker/internal/models"

type Response struct {
	Message     string `json:"message"`
	Data        any    `json:"data,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// Page is the document a client-side router renders: the component to mount
// and its props.
type Page struct {
	Component string         `json:"component"`
	Props     map[string]any `json:"props"`
	URL       string         `json:"url"`
}

type PaginationMeta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	FirstPage   int   `json:"first_page"`
	LastPage    int   `json:"last_page"`
}

type ActivityPage struct {
	Data []model.Activity `json:"data"`
	Meta *PaginationMeta  `json:"meta,omitempty"`
}

func NewPaginationMeta(total int64, page, perPage int) *PaginationMeta {
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return &PaginationMeta{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		FirstPage:   1,
		LastPage:    lastPage,
	}
}
