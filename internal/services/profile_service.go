package services

import (
	"context"

	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/repository"
)

type StudentProfileUpdater interface {
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateStudentProfileInput) (*models.StudentProfile, error)
}

type TutorProfileUpdater interface {
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateTutorProfileInput) (*models.TutorProfile, error)
}

type ProfileService struct {
	studentProfileRepo StudentProfileUpdater
	tutorProfileRepo   TutorProfileUpdater
}

func NewProfileService(studentProfileRepo StudentProfileUpdater, tutorProfileRepo TutorProfileUpdater) *ProfileService {
	return &ProfileService{
		studentProfileRepo: studentProfileRepo,
		tutorProfileRepo:   tutorProfileRepo,
	}
}

func (s *ProfileService) UpdateStudentProfile(ctx context.Context, userID int64, req repository.UpdateStudentProfileInput) (*models.StudentProfile, error) {
	return s.studentProfileRepo.UpdatePartial(ctx, userID, req)
}

func (s *ProfileService) UpdateTutorProfile(ctx context.Context, userID int64, req repository.UpdateTutorProfileInput) (*models.TutorProfile, error) {
	return s.tutorProfileRepo.UpdatePartial(ctx, userID, req)
}
