package models

type TutorCardResponse struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"display_name"`
	PhotoURL        string   `json:"photo_url"`
	Headline        string   `json:"headline"`
	Subjects        []string `json:"subjects"`
	Languages       []string `json:"languages"`
	HourlyRate      float64  `json:"hourly_rate"`
	LocationCity    string   `json:"location_city"`
	ExperienceYears int      `json:"experience_years"`
	IsVerified      bool     `json:"is_verified"`
	AverageRating   float64  `json:"average_rating"`
	ReviewCount     int      `json:"review_count"`
	MatchScore      int      `json:"match_score,omitempty"`
	MatchReasons    []string `json:"match_reasons,omitempty"`
}

type TutorDetailResponse struct {
	TutorCardResponse
	Bio             string             `json:"bio"`
	TeachingFormats []string           `json:"teaching_formats"`
	Qualifications  []string           `json:"qualifications"`
	Availability    []AvailabilitySlot `json:"availability"`
	Reviews         []Review           `json:"reviews"`
}
