package handlers

import (
	"strings"
)

var allowedLearningPreferences = map[string]struct{}{
	"visual":      {},
	"auditory":    {},
	"kinesthetic": {},
	"reading":     {},
}

var allowedPaces = map[string]struct{}{
	"slow":     {},
	"moderate": {},
	"fast":     {},
}

var allowedInteractionLevels = map[string]struct{}{
	"low":    {},
	"medium": {},
	"high":   {},
}

var allowedTeachingApproaches = map[string]struct{}{
	"demonstrative": {},
	"explanatory":   {},
	"hands_on":      {},
	"structured":    {},
}

var allowedTeachingPaces = map[string]struct{}{
	"adaptive": {},
	"slow":     {},
	"moderate": {},
	"fast":     {},
}

var allowedTeachingStructures = map[string]struct{}{
	"structured": {},
	"flexible":   {},
}

var allowedTeachingFormats = map[string]struct{}{
	"online":    {},
	"in_person": {},
	"hybrid":    {},
}

func validateStudentOnboardingRequest(req studentOnboardingRequest) string {
	if strings.TrimSpace(req.LearningGoals) == "" {
		return "learning_goals is required"
	}
	if req.Budget != nil && *req.Budget <= 0 {
		return "budget must be greater than 0"
	}
	if len(req.PreferredSubjects) == 0 {
		return "preferred_subjects must contain at least one item"
	}
	for _, subject := range req.PreferredSubjects {
		if strings.TrimSpace(subject) == "" {
			return "preferred_subjects must not contain empty values"
		}
	}
	if req.LearningPreference != nil {
		if err := validateLearningPreference(*req.LearningPreference); err != "" {
			return err
		}
	}
	if req.LearningPace != nil {
		if err := validatePace(*req.LearningPace); err != "" {
			return err
		}
	}
	if req.InteractionLevel != nil {
		if err := validateInteractionLevel(*req.InteractionLevel); err != "" {
			return err
		}
	}
	return ""
}

func validateTutorOnboardingRequest(req tutorOnboardingRequest) string {
	if strings.TrimSpace(req.Headline) == "" {
		return "headline is required"
	}
	if strings.TrimSpace(req.Bio) == "" {
		return "bio is required"
	}
	if len(req.Subjects) == 0 {
		return "subjects must contain at least one item"
	}
	for _, subject := range req.Subjects {
		if strings.TrimSpace(subject) == "" {
			return "subjects must not contain empty values"
		}
	}
	if len(req.Languages) == 0 {
		return "languages must contain at least one item"
	}
	for _, language := range req.Languages {
		if strings.TrimSpace(language) == "" {
			return "languages must not contain empty values"
		}
	}
	if req.HourlyRate <= 0 {
		return "hourly_rate must be greater than 0"
	}
	if err := validateTeachingFormats(req.TeachingFormats); err != "" {
		return err
	}
	if req.ExperienceYears < 0 {
		return "experience_years must be 0 or greater"
	}
	if req.TeachingApproach != nil {
		if err := validateTeachingApproach(*req.TeachingApproach); err != "" {
			return err
		}
	}
	if req.TeachingPace != nil {
		if err := validateTeachingPace(*req.TeachingPace); err != "" {
			return err
		}
	}
	if req.TeachingStructure != nil {
		if err := validateTeachingStructure(*req.TeachingStructure); err != "" {
			return err
		}
	}
	return ""
}

func validateStudentProfileUpdateRequest(req updateStudentProfileRequest) string {
	if req.LearningGoals != nil && strings.TrimSpace(*req.LearningGoals) == "" {
		return "learning_goals must not be empty"
	}
	if req.Budget != nil && *req.Budget <= 0 {
		return "budget must be greater than 0"
	}
	if req.PreferredSubjects != nil {
		for _, subject := range *req.PreferredSubjects {
			if strings.TrimSpace(subject) == "" {
				return "preferred_subjects must not contain empty values"
			}
		}
	}
	if req.LearningPreference != nil {
		if err := validateLearningPreference(*req.LearningPreference); err != "" {
			return err
		}
	}
	if req.LearningPace != nil {
		if err := validatePace(*req.LearningPace); err != "" {
			return err
		}
	}
	if req.InteractionLevel != nil {
		if err := validateInteractionLevel(*req.InteractionLevel); err != "" {
			return err
		}
	}
	return ""
}

func validateTutorProfileUpdateRequest(req updateTutorProfileRequest) string {
	if req.Headline != nil && strings.TrimSpace(*req.Headline) == "" {
		return "headline must not be empty"
	}
	if req.Bio != nil && strings.TrimSpace(*req.Bio) == "" {
		return "bio must not be empty"
	}
	if req.Subjects != nil {
		for _, subject := range *req.Subjects {
			if strings.TrimSpace(subject) == "" {
				return "subjects must not contain empty values"
			}
		}
	}
	if req.Languages != nil {
		for _, language := range *req.Languages {
			if strings.TrimSpace(language) == "" {
				return "languages must not contain empty values"
			}
		}
	}
	if req.HourlyRate != nil && *req.HourlyRate <= 0 {
		return "hourly_rate must be greater than 0"
	}
	if req.TeachingFormats != nil {
		if err := validateTeachingFormats(*req.TeachingFormats); err != "" {
			return err
		}
	}
	if req.ExperienceYears != nil && *req.ExperienceYears < 0 {
		return "experience_years must be 0 or greater"
	}
	if req.TeachingApproach != nil {
		if err := validateTeachingApproach(*req.TeachingApproach); err != "" {
			return err
		}
	}
	if req.TeachingPace != nil {
		if err := validateTeachingPace(*req.TeachingPace); err != "" {
			return err
		}
	}
	if req.TeachingStructure != nil {
		if err := validateTeachingStructure(*req.TeachingStructure); err != "" {
			return err
		}
	}
	return ""
}

func validateLearningPreference(preference string) string {
	if _, ok := allowedLearningPreferences[strings.TrimSpace(preference)]; !ok {
		return "learning_preference must be one of: visual, auditory, kinesthetic, reading"
	}
	return ""
}

func validatePace(pace string) string {
	if _, ok := allowedPaces[strings.TrimSpace(pace)]; !ok {
		return "learning_pace must be one of: slow, moderate, fast"
	}
	return ""
}

func validateInteractionLevel(level string) string {
	if _, ok := allowedInteractionLevels[strings.TrimSpace(level)]; !ok {
		return "interaction_level must be one of: low, medium, high"
	}
	return ""
}

func validateTeachingApproach(approach string) string {
	if _, ok := allowedTeachingApproaches[strings.TrimSpace(approach)]; !ok {
		return "teaching_approach must be one of: demonstrative, explanatory, hands_on, structured"
	}
	return ""
}

func validateTeachingPace(pace string) string {
	if _, ok := allowedTeachingPaces[strings.TrimSpace(pace)]; !ok {
		return "teaching_pace must be one of: adaptive, slow, moderate, fast"
	}
	return ""
}

func validateTeachingStructure(structure string) string {
	if _, ok := allowedTeachingStructures[strings.TrimSpace(structure)]; !ok {
		return "teaching_structure must be one of: structured, flexible"
	}
	return ""
}

func validateTeachingFormats(formats []string) string {
	if len(formats) == 0 {
		return "teaching_formats must contain at least one item"
	}
	for _, format := range formats {
		if _, ok := allowedTeachingFormats[strings.TrimSpace(format)]; !ok {
			return "teaching_formats entries must be one of: online, in_person, hybrid"
		}
	}
	return ""
}
