package usecase

import (
	"errors"
	"fmt"

	"resume-builder/internal/model"
)

var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrUnknownSection   = errors.New("unknown section")
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrUnknownOperation = errors.New("unknown operation")
)

// Section names as the form and the JSON payload spell them.
const (
	SectionPersonalInformation = "personalInformation"
	SectionSummary             = "summary"
	SectionExperience          = "experience"
	SectionEducation           = "education"
	SectionAchievements        = "achievements"
	SectionSpokenLanguages     = "spokenLanguages"
	SectionCertifications      = "certifications"
	SectionInterests           = "interests"
	SectionLanguages           = "languages"
	SectionContact             = "contact"
)

// recordField returns a pointer to field of the named record section in doc.
func recordField(doc *model.Resume, section, field string) (*string, error) {
	var fields map[string]*string
	switch section {
	case SectionPersonalInformation:
		p := &doc.PersonalInformation
		fields = map[string]*string{
			"fullName":    &p.FullName,
			"email":       &p.Email,
			"phoneNumber": &p.PhoneNumber,
			"location":    &p.Location,
			"linkedIn":    &p.LinkedIn,
			"gitHub":      &p.GitHub,
			"portfolio":   &p.Portfolio,
			"resume":      &p.Resume,
		}
	case SectionExperience:
		e := &doc.Experience
		fields = map[string]*string{
			"companyName": &e.CompanyName,
			"jobTitle":    &e.JobTitle,
			"duration":    &e.Duration,
			"description": &e.Description,
			"location":    &e.Location,
		}
	case SectionEducation:
		e := &doc.Education
		fields = map[string]*string{
			"schoolName":     &e.SchoolName,
			"degree":         &e.Degree,
			"fieldOfStudy":   &e.FieldOfStudy,
			"graduationYear": &e.GraduationYear,
			"location":       &e.Location,
		}
	case SectionContact:
		c := &doc.Contact
		fields = map[string]*string{
			"email":   &c.Email,
			"phone":   &c.Phone,
			"address": &c.Address,
			"website": &c.Website,
		}
	default:
		return nil, fmt.Errorf("%w: %q is not a record section", ErrUnknownSection, section)
	}
	ptr, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
	}
	return ptr, nil
}

func listSection(doc *model.Resume, section string) (*[]string, error) {
	switch section {
	case SectionAchievements:
		return &doc.Achievements, nil
	case SectionSpokenLanguages:
		return &doc.SpokenLanguages, nil
	case SectionCertifications:
		return &doc.Certifications, nil
	case SectionInterests:
		return &doc.Interests, nil
	}
	return nil, fmt.Errorf("%w: %q is not a list section", ErrUnknownSection, section)
}

func nestedList(doc *model.Resume, section, subsection string) ([]string, model.Category, error) {
	if section != SectionLanguages {
		return nil, "", fmt.Errorf("%w: %q has no nested lists", ErrUnknownSection, section)
	}
	c, ok := model.ParseCategory(subsection)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownCategory, subsection)
	}
	return doc.Languages[c], c, nil
}

// SetScalar replaces one field of a record section.
func SetScalar(doc model.Resume, section, field, value string) (model.Resume, error) {
	out := doc.Clone()
	ptr, err := recordField(&out, section, field)
	if err != nil {
		return doc, err
	}
	*ptr = value
	return out, nil
}

// SetTopLevelScalar replaces a section that is itself a string.
func SetTopLevelScalar(doc model.Resume, field, value string) (model.Resume, error) {
	if field != SectionSummary {
		return doc, fmt.Errorf("%w: %q is not a scalar section", ErrUnknownSection, field)
	}
	out := doc.Clone()
	out.Summary = value
	return out, nil
}

// SetArrayElement replaces the element at index of a list section.
// The index must address an existing element.
func SetArrayElement(doc model.Resume, section string, index int, value string) (model.Resume, error) {
	out := doc.Clone()
	list, err := listSection(&out, section)
	if err != nil {
		return doc, err
	}
	if err := checkIndex(section, index, len(*list)); err != nil {
		return doc, err
	}
	(*list)[index] = value
	return out, nil
}

// AppendArrayElement adds value at the end of a list section.
func AppendArrayElement(doc model.Resume, section, value string) (model.Resume, error) {
	out := doc.Clone()
	list, err := listSection(&out, section)
	if err != nil {
		return doc, err
	}
	*list = append(*list, value)
	return out, nil
}

// SetNestedArrayElement replaces one entry of a skill category.
func SetNestedArrayElement(doc model.Resume, section, subsection string, index int, value string) (model.Resume, error) {
	out := doc.Clone()
	list, c, err := nestedList(&out, section, subsection)
	if err != nil {
		return doc, err
	}
	if err := checkIndex(section+"."+subsection, index, len(list)); err != nil {
		return doc, err
	}
	list[index] = value
	out.Languages[c] = list
	return out, nil
}

// AppendNestedArrayElement adds value at the end of a skill category.
func AppendNestedArrayElement(doc model.Resume, section, subsection, value string) (model.Resume, error) {
	out := doc.Clone()
	list, c, err := nestedList(&out, section, subsection)
	if err != nil {
		return doc, err
	}
	out.Languages[c] = append(list, value)
	return out, nil
}

func checkIndex(where string, index, length int) error {
	if index < 0 || index >= length {
		return fmt.Errorf("%w: %s[%d] with length %d", ErrIndexOutOfRange, where, index, length)
	}
	return nil
}
