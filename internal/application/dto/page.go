package dto

// PageRequest carries zero-based pagination parameters and the sort direction.
type PageRequest struct {
	Page int
	Size int
	Desc bool
}

// PageResponse is the paged envelope returned by list and search operations.
type PageResponse struct {
	Items         []ReminderResponse `json:"items"`
	Page          int                `json:"page"`
	Size          int                `json:"size"`
	TotalPages    int                `json:"totalPages"`
	TotalElements int64              `json:"totalElements"`
}

// NewPageResponse assembles the envelope, deriving totalPages from the element count.
func NewPageResponse(items []ReminderResponse, req PageRequest, total int64) PageResponse {
	pages := int(total) / req.Size
	if int(total)%req.Size != 0 {
		pages++
	}
	return PageResponse{
		Items:         items,
		Page:          req.Page,
		Size:          req.Size,
		TotalPages:    pages,
		TotalElements: total,
	}
}
