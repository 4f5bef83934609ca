package services

import (
	"context"
	"testing"

	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/search"
)

type stubSearchTutorRepo struct {
	stubTutorLister
	cities []string
}

func (s *stubSearchTutorRepo) DistinctCities(_ context.Context) ([]string, error) {
	return s.cities, nil
}

type stubSubjectCounter struct {
	counts []models.SubjectCount
}

func (s *stubSubjectCounter) ListWithTutorCounts(_ context.Context) ([]models.SubjectCount, error) {
	return s.counts, nil
}

func TestSearchFiltersSortsAndPaginates(t *testing.T) {
	cheap := buildTestTutor(1, "Mathematics", 2, 4.0)
	cheapRate := 20.0
	cheap.HourlyRate = &cheapRate
	mid := buildTestTutor(2, "Mathematics", 4, 4.5)
	midRate := 40.0
	mid.HourlyRate = &midRate
	expensive := buildTestTutor(3, "Mathematics", 8, 4.9)
	expensiveRate := 90.0
	expensive.HourlyRate = &expensiveRate
	historian := buildTestTutor(4, "History", 5, 4.7)

	service := NewSearchService(&stubSearchTutorRepo{
		stubTutorLister: stubTutorLister{tutors: []models.TutorProfile{expensive, cheap, historian, mid}},
	}, &stubSubjectCounter{})

	max := 50.0
	page, meta, err := service.Search(context.Background(), SearchInput{
		Criteria:  search.Criteria{Subjects: []string{"Mathematics"}, PriceMax: &max},
		SortKey:   search.SortByPrice,
		SortOrder: search.OrderAsc,
		Page:      1,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if meta.Total != 2 || meta.TotalPages != 1 {
		t.Fatalf("expected 2 results on 1 page, got meta %+v", meta)
	}
	if len(page) != 2 || page[0].UserID != 1 || page[1].UserID != 2 {
		t.Fatalf("expected tutors [1 2] by ascending price, got %+v", tutorIDs(page))
	}
}

func TestSearchPaginatesPastTheEnd(t *testing.T) {
	service := NewSearchService(&stubSearchTutorRepo{
		stubTutorLister: stubTutorLister{tutors: []models.TutorProfile{
			buildTestTutor(1, "Mathematics", 2, 4.0),
		}},
	}, &stubSubjectCounter{})

	page, meta, err := service.Search(context.Background(), SearchInput{
		SortKey: search.SortByRating,
		Page:    5,
		Limit:   10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("expected empty page past the end, got %d tutors", len(page))
	}
	if meta.Total != 1 || meta.Page != 5 {
		t.Fatalf("unexpected meta %+v", meta)
	}
}

func TestMetadataCombinesSubjectsAndCities(t *testing.T) {
	service := NewSearchService(
		&stubSearchTutorRepo{cities: []string{"Geneva", "Lausanne"}},
		&stubSubjectCounter{counts: []models.SubjectCount{
			{Name: "Mathematics", TutorCount: 3},
		}},
	)

	metadata, err := service.Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if len(metadata.Subjects) != 1 || metadata.Subjects[0].Name != "Mathematics" {
		t.Fatalf("unexpected subjects %+v", metadata.Subjects)
	}
	if len(metadata.Cities) != 2 || metadata.Cities[0] != "Geneva" {
		t.Fatalf("unexpected cities %+v", metadata.Cities)
	}
}

func tutorIDs(tutors []models.TutorProfile) []int64 {
	ids := make([]int64, 0, len(tutors))
	for _, tutor := range tutors {
		ids = append(ids, tutor.UserID)
	}
	return ids
}
