package service

import (
	"go-user-admin/internal/domain"
)

// Page is one zero-based slice of a collection plus enough bookkeeping for
// the HTTP layer to render paging metadata.
type Page struct {
	Items      []domain.User `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	TotalPages int           `json:"totalPages"`
}

// Paginate slices users into the half-open window [page*size, page*size+size).
// size must be positive and page non-negative; a page past the end is not an
// error, it is simply empty.
func Paginate(users []domain.User, page, size int) (*Page, error) {
	if size <= 0 {
		return nil, domain.ErrInvalidPageSize
	}
	if page < 0 {
		return nil, domain.ErrInvalidPageNumber
	}

	total := len(users)
	totalPages := 0
	if total > 0 {
		if size >= total {
			totalPages = 1
		} else {
			totalPages = (total + size - 1) / size
		}
	}
	p := &Page{
		Items:      []domain.User{},
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}

	// page*size can overflow for near-MaxInt query values, so bound-check
	// before multiplying; any page past the last one is empty.
	if total == 0 || page > (total-1)/size {
		return p, nil
	}
	start := page * size
	end := start + size
	if end > total {
		end = total
	}
	p.Items = append(p.Items, users[start:end]...)
	return p, nil
}
