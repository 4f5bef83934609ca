package services

import (
	"context"

	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/search"
)

type subjectCounter interface {
	ListWithTutorCounts(ctx context.Context) ([]models.SubjectCount, error)
}

type cityLister interface {
	DistinctCities(ctx context.Context) ([]string, error)
}

type searchTutorRepo interface {
	tutorLister
	cityLister
}

type SearchService struct {
	tutorRepo   searchTutorRepo
	subjectRepo subjectCounter
}

func NewSearchService(tutorRepo searchTutorRepo, subjectRepo subjectCounter) *SearchService {
	return &SearchService{tutorRepo: tutorRepo, subjectRepo: subjectRepo}
}

type SearchInput struct {
	Criteria  search.Criteria
	SortKey   search.SortKey
	SortOrder search.SortOrder
	Page      int
	Limit     int
}

// Search loads the hydrated candidate set once and applies filtering, sorting
// and pagination in memory. The candidate volume is a curated marketplace,
// not an open platform, so the in-memory pipeline stays cheap.
func (s *SearchService) Search(
	ctx context.Context,
	input SearchInput,
) ([]models.TutorProfile, models.PaginationMeta, error) {
	tutors, err := s.tutorRepo.ListAll(ctx)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	filtered := search.Apply(tutors, search.Compile(input.Criteria))
	search.Sort(filtered, input.SortKey, input.SortOrder)
	page, meta := search.Paginate(filtered, input.Page, input.Limit)
	return page, meta, nil
}

type FilterMetadata struct {
	Subjects []models.SubjectCount `json:"subjects"`
	Cities   []string              `json:"cities"`
}

// Metadata lists the values the search filters can take, for populating
// filter UIs.
func (s *SearchService) Metadata(ctx context.Context) (*FilterMetadata, error) {
	subjects, err := s.subjectRepo.ListWithTutorCounts(ctx)
	if err != nil {
		return nil, err
	}
	cities, err := s.tutorRepo.DistinctCities(ctx)
	if err != nil {
		return nil, err
	}
	return &FilterMetadata{Subjects: subjects, Cities: cities}, nil
}
