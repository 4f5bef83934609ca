package search

import "github.com/camilohimself/projet-gocours/internal/models"

// Paginate slices the filtered, sorted collection. Pages are 1-indexed; a
// page past the end yields an empty slice, never an error.
func Paginate(tutors []models.TutorProfile, page, limit int) ([]models.TutorProfile, models.PaginationMeta) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(tutors)
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return tutors[start:end], models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
