package repository

import (
	"context"

	"github.com/camilohimself/projet-gocours/internal/models"
)

type SubjectRepository struct {
	db DBTX
}

func NewSubjectRepository(db DBTX) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) ListAll(ctx context.Context) ([]models.Subject, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, category
		FROM subjects
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Category); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// ListWithTutorCounts returns the subjects at least one onboarded tutor
// teaches, with how many teach each. Feeds the search filter metadata.
func (r *SubjectRepository) ListWithTutorCounts(ctx context.Context) ([]models.SubjectCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.name, s.category, COUNT(ts.tutor_id)
		FROM subjects s
		JOIN tutor_subjects ts ON ts.subject_id = s.id
		JOIN tutor_profiles p ON p.id = ts.tutor_id AND p.onboarding_complete = TRUE
		GROUP BY s.name, s.category
		ORDER BY s.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.SubjectCount
	for rows.Next() {
		var count models.SubjectCount
		if err := rows.Scan(&count.Name, &count.Category, &count.TutorCount); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}
