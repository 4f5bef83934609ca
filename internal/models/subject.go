package models

type Subject struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// SubjectCount is a filter-metadata row: how many tutors teach the subject.
type SubjectCount struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	TutorCount int    `json:"tutor_count"`
}
