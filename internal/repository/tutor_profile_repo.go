package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/camilohimself/projet-gocours/internal/models"
)

const tutorProfileColumns = `
	p.id, p.user_id, u.display_name, u.photo_url, p.headline, p.bio, p.languages,
	p.hourly_rate, p.teaching_formats, p.location_city, p.experience_years,
	p.qualifications, p.is_verified, p.average_rating, p.review_count,
	p.teaching_approach, p.teaching_pace, p.teaching_structure,
	p.onboarding_complete, p.created_at, p.updated_at
`

type TutorProfileRepository struct {
	db DBTX
}

func NewTutorProfileRepository(db DBTX) *TutorProfileRepository {
	return &TutorProfileRepository{db: db}
}

func (r *TutorProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO tutor_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *TutorProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.TutorProfile, error) {
	query := `
		SELECT ` + tutorProfileColumns + `
		FROM tutor_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`
	profile, err := r.scanProfile(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, []*models.TutorProfile{profile}); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListAll returns every onboarded tutor hydrated with subjects and active
// availability slots. Filtering, sorting and pagination happen in memory in
// the search layer.
func (r *TutorProfileRepository) ListAll(ctx context.Context) ([]models.TutorProfile, error) {
	query := `
		SELECT ` + tutorProfileColumns + `
		FROM tutor_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.onboarding_complete = TRUE
		ORDER BY p.id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.TutorProfile
	for rows.Next() {
		var profile models.TutorProfile
		if err := scanTutorRow(rows, &profile); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*models.TutorProfile, len(profiles))
	for i := range profiles {
		refs[i] = &profiles[i]
	}
	if err := r.hydrate(ctx, refs); err != nil {
		return nil, err
	}
	return profiles, nil
}

type TutorOnboardingInput struct {
	Headline          string
	Bio               string
	Subjects          []string
	Languages         []string
	HourlyRate        float64
	TeachingFormats   []string
	LocationCity      *string
	ExperienceYears   int
	Qualifications    []string
	TeachingApproach  *string
	TeachingPace      *string
	TeachingStructure *string
}

func (r *TutorProfileRepository) UpdateOnboarding(ctx context.Context, userID int64, req TutorOnboardingInput) (*models.TutorProfile, error) {
	query := `
		UPDATE tutor_profiles
		SET headline = $1,
			bio = $2,
			languages = $3,
			hourly_rate = $4,
			teaching_formats = $5,
			location_city = $6,
			experience_years = $7,
			qualifications = $8,
			teaching_approach = $9,
			teaching_pace = $10,
			teaching_structure = $11,
			onboarding_complete = TRUE,
			updated_at = NOW()
		WHERE user_id = $12
	`
	tag, err := r.db.Exec(ctx, query,
		req.Headline,
		req.Bio,
		req.Languages,
		req.HourlyRate,
		req.TeachingFormats,
		req.LocationCity,
		req.ExperienceYears,
		req.Qualifications,
		req.TeachingApproach,
		req.TeachingPace,
		req.TeachingStructure,
		userID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	if err := r.ReplaceSubjects(ctx, userID, req.Subjects); err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

type UpdateTutorProfileInput struct {
	Headline          *string
	Bio               *string
	Subjects          *[]string
	Languages         *[]string
	HourlyRate        *float64
	TeachingFormats   *[]string
	LocationCity      *string
	ExperienceYears   *int
	Qualifications    *[]string
	TeachingApproach  *string
	TeachingPace      *string
	TeachingStructure *string
}

func (r *TutorProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateTutorProfileInput) (*models.TutorProfile, error) {
	query := `
		UPDATE tutor_profiles
		SET headline = COALESCE($1, headline),
			bio = COALESCE($2, bio),
			languages = COALESCE($3, languages),
			hourly_rate = COALESCE($4, hourly_rate),
			teaching_formats = COALESCE($5, teaching_formats),
			location_city = COALESCE($6, location_city),
			experience_years = COALESCE($7, experience_years),
			qualifications = COALESCE($8, qualifications),
			teaching_approach = COALESCE($9, teaching_approach),
			teaching_pace = COALESCE($10, teaching_pace),
			teaching_structure = COALESCE($11, teaching_structure),
			updated_at = NOW()
		WHERE user_id = $12
	`
	tag, err := r.db.Exec(ctx, query,
		req.Headline,
		req.Bio,
		req.Languages,
		req.HourlyRate,
		req.TeachingFormats,
		req.LocationCity,
		req.ExperienceYears,
		req.Qualifications,
		req.TeachingApproach,
		req.TeachingPace,
		req.TeachingStructure,
		userID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	if req.Subjects != nil {
		if err := r.ReplaceSubjects(ctx, userID, *req.Subjects); err != nil {
			return nil, err
		}
	}
	return r.GetByUserID(ctx, userID)
}

// ReplaceSubjects relinks the tutor to the named subjects, creating catalog
// entries for names not seen before.
func (r *TutorProfileRepository) ReplaceSubjects(ctx context.Context, userID int64, names []string) error {
	if _, err := r.db.Exec(ctx, `
		DELETE FROM tutor_subjects
		WHERE tutor_id = (SELECT id FROM tutor_profiles WHERE user_id = $1)
	`, userID); err != nil {
		return err
	}

	for _, name := range names {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO subjects (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, name); err != nil {
			return err
		}
		if _, err := r.db.Exec(ctx, `
			INSERT INTO tutor_subjects (tutor_id, subject_id)
			SELECT p.id, s.id
			FROM tutor_profiles p, subjects s
			WHERE p.user_id = $1 AND s.name = $2
			ON CONFLICT DO NOTHING
		`, userID, name); err != nil {
			return err
		}
	}
	return nil
}

func (r *TutorProfileRepository) ReplaceAvailability(ctx context.Context, userID int64, slots []models.AvailabilitySlot) error {
	if _, err := r.db.Exec(ctx, `
		DELETE FROM availability_slots
		WHERE tutor_id = (SELECT id FROM tutor_profiles WHERE user_id = $1)
	`, userID); err != nil {
		return err
	}
	for _, slot := range slots {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO availability_slots (tutor_id, day_of_week, time_slot, is_active)
			SELECT id, $2, $3, $4 FROM tutor_profiles WHERE user_id = $1
		`, userID, slot.DayOfWeek, slot.TimeSlot, slot.IsActive); err != nil {
			return err
		}
	}
	return nil
}

// DistinctCities lists the cities tutors teach from, for filter metadata.
func (r *TutorProfileRepository) DistinctCities(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT location_city
		FROM tutor_profiles
		WHERE location_city IS NOT NULL AND onboarding_complete = TRUE
		ORDER BY location_city
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

func (r *TutorProfileRepository) scanProfile(ctx context.Context, query string, args ...any) (*models.TutorProfile, error) {
	var profile models.TutorProfile
	if err := scanTutorRow(r.db.QueryRow(ctx, query, args...), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTutorRow(row rowScanner, profile *models.TutorProfile) error {
	return row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.DisplayName,
		&profile.PhotoURL,
		&profile.Headline,
		&profile.Bio,
		&profile.Languages,
		&profile.HourlyRate,
		&profile.TeachingFormats,
		&profile.LocationCity,
		&profile.ExperienceYears,
		&profile.Qualifications,
		&profile.IsVerified,
		&profile.AverageRating,
		&profile.ReviewCount,
		&profile.TeachingApproach,
		&profile.TeachingPace,
		&profile.TeachingStructure,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
}

// hydrate attaches subjects and active availability slots to the profiles.
func (r *TutorProfileRepository) hydrate(ctx context.Context, profiles []*models.TutorProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	byID := make(map[int64]*models.TutorProfile, len(profiles))
	ids := make([]int64, 0, len(profiles))
	for _, profile := range profiles {
		byID[profile.ID] = profile
		ids = append(ids, profile.ID)
	}

	subjectRows, err := r.db.Query(ctx, `
		SELECT ts.tutor_id, s.id, s.name, s.category
		FROM tutor_subjects ts
		JOIN subjects s ON s.id = ts.subject_id
		WHERE ts.tutor_id = ANY($1)
		ORDER BY s.name
	`, ids)
	if err != nil {
		return err
	}
	defer subjectRows.Close()
	for subjectRows.Next() {
		var tutorID int64
		var subject models.Subject
		if err := subjectRows.Scan(&tutorID, &subject.ID, &subject.Name, &subject.Category); err != nil {
			return err
		}
		if profile, ok := byID[tutorID]; ok {
			profile.Subjects = append(profile.Subjects, subject)
		}
	}
	if err := subjectRows.Err(); err != nil {
		return err
	}

	slotRows, err := r.db.Query(ctx, `
		SELECT id, tutor_id, day_of_week, time_slot, is_active
		FROM availability_slots
		WHERE tutor_id = ANY($1) AND is_active = TRUE
		ORDER BY id
	`, ids)
	if err != nil {
		return err
	}
	defer slotRows.Close()
	for slotRows.Next() {
		var slot models.AvailabilitySlot
		if err := slotRows.Scan(&slot.ID, &slot.TutorID, &slot.DayOfWeek, &slot.TimeSlot, &slot.IsActive); err != nil {
			return err
		}
		if profile, ok := byID[slot.TutorID]; ok {
			profile.Availability = append(profile.Availability, slot)
		}
	}
	return slotRows.Err()
}
