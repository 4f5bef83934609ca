package repository

import (
	"context"

	"github.com/camilohimself/projet-gocours/internal/models"
)

const studentProfileColumns = `
	id, user_id, learning_goals, budget, preferred_subjects,
	learning_preference, learning_pace, interaction_level,
	onboarding_complete, created_at, updated_at
`

type StudentProfileRepository struct {
	db DBTX
}

func NewStudentProfileRepository(db DBTX) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

func (r *StudentProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO student_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	query := `
		SELECT ` + studentProfileColumns + `
		FROM student_profiles
		WHERE user_id = $1
	`
	var profile models.StudentProfile
	if err := scanStudentRow(r.db.QueryRow(ctx, query, userID), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByUserIDs loads several student profiles at once, preserving the order
// of the requested ids; unknown ids are skipped.
func (r *StudentProfileRepository) GetByUserIDs(ctx context.Context, userIDs []int64) ([]models.StudentProfile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + studentProfileColumns + `
		FROM student_profiles
		WHERE user_id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byUserID := make(map[int64]models.StudentProfile, len(userIDs))
	for rows.Next() {
		var profile models.StudentProfile
		if err := scanStudentRow(rows, &profile); err != nil {
			return nil, err
		}
		byUserID[profile.UserID] = profile
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	profiles := make([]models.StudentProfile, 0, len(byUserID))
	for _, userID := range userIDs {
		if profile, ok := byUserID[userID]; ok {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}

type StudentOnboardingInput struct {
	LearningGoals      string
	Budget             *float64
	PreferredSubjects  []string
	LearningPreference *string
	LearningPace       *string
	InteractionLevel   *string
}

func (r *StudentProfileRepository) UpdateOnboarding(ctx context.Context, userID int64, req StudentOnboardingInput) (*models.StudentProfile, error) {
	query := `
		UPDATE student_profiles
		SET learning_goals = $1,
			budget = $2,
			preferred_subjects = $3,
			learning_preference = $4,
			learning_pace = $5,
			interaction_level = $6,
			onboarding_complete = TRUE,
			updated_at = NOW()
		WHERE user_id = $7
		RETURNING ` + studentProfileColumns + `
	`
	var profile models.StudentProfile
	err := scanStudentRow(r.db.QueryRow(ctx, query,
		req.LearningGoals,
		req.Budget,
		req.PreferredSubjects,
		req.LearningPreference,
		req.LearningPace,
		req.InteractionLevel,
		userID,
	), &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type UpdateStudentProfileInput struct {
	LearningGoals      *string
	Budget             *float64
	PreferredSubjects  *[]string
	LearningPreference *string
	LearningPace       *string
	InteractionLevel   *string
}

func (r *StudentProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateStudentProfileInput) (*models.StudentProfile, error) {
	query := `
		UPDATE student_profiles
		SET learning_goals = COALESCE($1, learning_goals),
			budget = COALESCE($2, budget),
			preferred_subjects = COALESCE($3, preferred_subjects),
			learning_preference = COALESCE($4, learning_preference),
			learning_pace = COALESCE($5, learning_pace),
			interaction_level = COALESCE($6, interaction_level),
			updated_at = NOW()
		WHERE user_id = $7
		RETURNING ` + studentProfileColumns + `
	`
	var profile models.StudentProfile
	err := scanStudentRow(r.db.QueryRow(ctx, query,
		req.LearningGoals,
		req.Budget,
		req.PreferredSubjects,
		req.LearningPreference,
		req.LearningPace,
		req.InteractionLevel,
		userID,
	), &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func scanStudentRow(row rowScanner, profile *models.StudentProfile) error {
	return row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.LearningGoals,
		&profile.Budget,
		&profile.PreferredSubjects,
		&profile.LearningPreference,
		&profile.LearningPace,
		&profile.InteractionLevel,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
}
