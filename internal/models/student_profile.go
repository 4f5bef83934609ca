package models

import "time"

type StudentProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	LearningGoals      *string   `json:"learning_goals"`
	Budget             *float64  `json:"budget"`
	PreferredSubjects  *[]string `json:"preferred_subjects"`
	LearningPreference *string   `json:"learning_preference"`
	LearningPace       *string   `json:"learning_pace"`
	InteractionLevel   *string   `json:"interaction_level"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type LearningStyle struct {
	Preference  string `json:"preference"`
	Pace        string `json:"pace"`
	Interaction string `json:"interaction"`
}

// Style returns the student's learning style, or nil when none is set.
func (p *StudentProfile) Style() *LearningStyle {
	if p == nil {
		return nil
	}
	if p.LearningPreference == nil && p.LearningPace == nil && p.InteractionLevel == nil {
		return nil
	}
	style := &LearningStyle{}
	if p.LearningPreference != nil {
		style.Preference = *p.LearningPreference
	}
	if p.LearningPace != nil {
		style.Pace = *p.LearningPace
	}
	if p.InteractionLevel != nil {
		style.Interaction = *p.InteractionLevel
	}
	return style
}

// PrefersSubject reports whether the subject is among the student's
// preferred subjects.
func (p *StudentProfile) PrefersSubject(name string) bool {
	if p == nil || p.PreferredSubjects == nil {
		return false
	}
	for _, subject := range *p.PreferredSubjects {
		if subject == name {
			return true
		}
	}
	return false
}
