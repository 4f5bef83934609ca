package models

import "time"

type TutorProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	DisplayName        *string   `json:"display_name"`
	PhotoURL           *string   `json:"photo_url"`
	Headline           *string   `json:"headline"`
	Bio                *string   `json:"bio"`
	Languages          *[]string `json:"languages"`
	HourlyRate         *float64  `json:"hourly_rate"`
	TeachingFormats    *[]string `json:"teaching_formats"`
	LocationCity       *string   `json:"location_city"`
	ExperienceYears    *int      `json:"experience_years"`
	Qualifications     *[]string `json:"qualifications"`
	IsVerified         *bool     `json:"is_verified"`
	AverageRating      *float64  `json:"average_rating"`
	ReviewCount        int       `json:"review_count"`
	TeachingApproach   *string   `json:"teaching_approach"`
	TeachingPace       *string   `json:"teaching_pace"`
	TeachingStructure  *string   `json:"teaching_structure"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Hydrated relations.
	Subjects     []Subject          `json:"subjects,omitempty"`
	Availability []AvailabilitySlot `json:"availability,omitempty"`
}

type TeachingStyle struct {
	Approach  string `json:"approach"`
	Pace      string `json:"pace"`
	Structure string `json:"structure"`
}

// Style returns the tutor's teaching style, or nil when the tutor has not
// described one yet.
func (p *TutorProfile) Style() *TeachingStyle {
	if p == nil {
		return nil
	}
	if p.TeachingApproach == nil && p.TeachingPace == nil && p.TeachingStructure == nil {
		return nil
	}
	style := &TeachingStyle{}
	if p.TeachingApproach != nil {
		style.Approach = *p.TeachingApproach
	}
	if p.TeachingPace != nil {
		style.Pace = *p.TeachingPace
	}
	if p.TeachingStructure != nil {
		style.Structure = *p.TeachingStructure
	}
	return style
}

// TeachesSubject reports whether the tutor teaches the named subject.
func (p *TutorProfile) TeachesSubject(name string) bool {
	for _, subject := range p.Subjects {
		if subject.Name == name {
			return true
		}
	}
	return false
}

type AvailabilitySlot struct {
	ID        int64  `json:"id"`
	TutorID   int64  `json:"tutor_id"`
	DayOfWeek string `json:"day_of_week"`
	TimeSlot  string `json:"time_slot"`
	IsActive  bool   `json:"is_active"`
}
