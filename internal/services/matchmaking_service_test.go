package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/camilohimself/projet-gocours/internal/matching"
	"github.com/camilohimself/projet-gocours/internal/models"
)

type stubTutorLister struct {
	tutors []models.TutorProfile
}

func (s *stubTutorLister) ListAll(_ context.Context) ([]models.TutorProfile, error) {
	return s.tutors, nil
}

type stubStudentReader struct {
	profiles map[int64]models.StudentProfile
}

func (s *stubStudentReader) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &profile, nil
}

func (s *stubStudentReader) GetByUserIDs(_ context.Context, userIDs []int64) ([]models.StudentProfile, error) {
	profiles := make([]models.StudentProfile, 0, len(userIDs))
	for _, userID := range userIDs {
		if profile, ok := s.profiles[userID]; ok {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}

func TestRecommendedTutorsRanksSubjectTeachersFirst(t *testing.T) {
	mathTutor := buildTestTutor(11, "Mathematics", 5, 4.8)
	otherTutor := buildTestTutor(12, "History", 2, 4.0)
	service := NewMatchmakingService(
		&stubTutorLister{tutors: []models.TutorProfile{otherTutor, mathTutor}},
		&stubStudentReader{profiles: map[int64]models.StudentProfile{
			1: {UserID: 1, OnboardingComplete: true},
		}},
		matching.NewScorer(nil),
	)

	ranked, err := service.RecommendedTutors(context.Background(), 1, "Mathematics", 2)
	if err != nil {
		t.Fatalf("RecommendedTutors: %v", err)
	}

	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked tutors, got %d", len(ranked))
	}
	if ranked[0].Tutor.UserID != 11 {
		t.Fatalf("expected subject teacher 11 first, got %d", ranked[0].Tutor.UserID)
	}
	if ranked[0].Score.Overall <= ranked[1].Score.Overall {
		t.Fatalf("expected descending scores, got %d then %d", ranked[0].Score.Overall, ranked[1].Score.Overall)
	}
}

func TestRecommendedTutorsAppliesLimit(t *testing.T) {
	service := NewMatchmakingService(
		&stubTutorLister{tutors: []models.TutorProfile{
			buildTestTutor(11, "Mathematics", 5, 4.8),
			buildTestTutor(12, "Mathematics", 3, 4.2),
			buildTestTutor(13, "Mathematics", 1, 3.9),
		}},
		&stubStudentReader{profiles: map[int64]models.StudentProfile{
			1: {UserID: 1, OnboardingComplete: true},
		}},
		matching.NewScorer(nil),
	)

	ranked, err := service.RecommendedTutors(context.Background(), 1, "Mathematics", 2)
	if err != nil {
		t.Fatalf("RecommendedTutors: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(ranked))
	}
}

func TestRecommendedTutorsRequiresStudentProfile(t *testing.T) {
	service := NewMatchmakingService(
		&stubTutorLister{},
		&stubStudentReader{profiles: map[int64]models.StudentProfile{}},
		matching.NewScorer(nil),
	)

	if _, err := service.RecommendedTutors(context.Background(), 99, "Mathematics", 5); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGroupMatchingAssignsDistinctTutors(t *testing.T) {
	service := NewMatchmakingService(
		&stubTutorLister{tutors: []models.TutorProfile{
			buildTestTutor(201, "Mathematics", 6, 4.9),
			buildTestTutor(202, "Mathematics", 2, 4.1),
		}},
		&stubStudentReader{profiles: map[int64]models.StudentProfile{
			101: {UserID: 101, OnboardingComplete: true},
			102: {UserID: 102, OnboardingComplete: true},
			103: {UserID: 103, OnboardingComplete: true},
		}},
		matching.NewScorer(nil),
	)

	assignments, err := service.GroupMatching(context.Background(), []int64{101, 102, 103}, "Mathematics")
	if err != nil {
		t.Fatalf("GroupMatching: %v", err)
	}

	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments for 2 tutors, got %d", len(assignments))
	}
	if assignments[101] == assignments[102] {
		t.Fatalf("expected distinct tutors, both students got %d", assignments[101])
	}
	if _, matched := assignments[103]; matched {
		t.Fatalf("expected student 103 to stay unmatched")
	}
}

func TestGroupMatchingRejectsEmptyInput(t *testing.T) {
	service := NewMatchmakingService(&stubTutorLister{}, &stubStudentReader{}, matching.NewScorer(nil))

	if _, err := service.GroupMatching(context.Background(), nil, "Mathematics"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func buildTestTutor(userID int64, subject string, experience int, rating float64) models.TutorProfile {
	rate := 40.0
	verified := true
	return models.TutorProfile{
		ID:                 userID,
		UserID:             userID,
		HourlyRate:         &rate,
		ExperienceYears:    &experience,
		AverageRating:      &rating,
		IsVerified:         &verified,
		OnboardingComplete: true,
		Subjects:           []models.Subject{{ID: userID, Name: subject}},
	}
}
