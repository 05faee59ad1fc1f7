package model

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Partial is a possibly incomplete document supplied from outside, usually
// the generation service. A nil pointer means the field was absent; a
// pointer to "" means it was present and empty. Lists that are nil or empty
// count as not supplied.
type Partial struct {
	PersonalInformation *PersonalInformationPatch `json:"personalInformation,omitempty"`
	Summary             *string                   `json:"summary,omitempty"`
	Experience          *ExperiencePatch          `json:"experience,omitempty"`
	Education           *EducationPatch           `json:"education,omitempty"`
	Achievements        []string                  `json:"achievements,omitempty"`
	SpokenLanguages     []string                  `json:"spokenLanguages,omitempty"`
	Certifications      []string                  `json:"certifications,omitempty"`
	Interests           []string                  `json:"interests,omitempty"`
	Languages           map[Category][]string     `json:"languages,omitempty"`
	Contact             *ContactPatch             `json:"contact,omitempty"`
}

type PersonalInformationPatch struct {
	FullName    *string `json:"fullName,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Location    *string `json:"location,omitempty"`
	LinkedIn    *string `json:"linkedIn,omitempty"`
	GitHub      *string `json:"gitHub,omitempty"`
	Portfolio   *string `json:"portfolio,omitempty"`
	Resume      *string `json:"resume,omitempty"`
}

type ExperiencePatch struct {
	CompanyName *string `json:"companyName,omitempty"`
	JobTitle    *string `json:"jobTitle,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
}

type EducationPatch struct {
	SchoolName     *string `json:"schoolName,omitempty"`
	Degree         *string `json:"degree,omitempty"`
	FieldOfStudy   *string `json:"fieldOfStudy,omitempty"`
	GraduationYear *string `json:"graduationYear,omitempty"`
	Location       *string `json:"location,omitempty"`
}

type ContactPatch struct {
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Website *string `json:"website,omitempty"`
}

// Aliases seen in generated payloads, mapped to the form's field names.
var (
	topLevelAliases = map[string]string{
		"skills":          "languages",
		"technicalSkills": "languages",
	}
	personalAliases = map[string]string{
		"name":     "fullName",
		"phone":    "phoneNumber",
		"linkedin": "linkedIn",
		"github":   "gitHub",
		"website":  "portfolio",
	}
	experienceAliases = map[string]string{
		"company":  "companyName",
		"position": "jobTitle",
		"title":    "jobTitle",
	}
	educationAliases = map[string]string{
		"school":      "schoolName",
		"institution": "schoolName",
		"field":       "fieldOfStudy",
		"year":        "graduationYear",
	}
	recordSections = map[string]map[string]string{
		"personalInformation": personalAliases,
		"experience":          experienceAliases,
		"education":           educationAliases,
		"contact":             nil,
	}
	listSections = []string{"achievements", "spokenLanguages", "certifications", "interests"}
)

// NewPartialFromMap coerces a decoded JSON object into a Partial. It renames
// known aliases, turns numbers and booleans into strings, wraps a lone
// string in a list where a list is expected and keeps only the first entry
// when a single-entry section arrives as a list. The result is then checked
// against the resume schema; anything still of the wrong shape is rejected
// with ErrInvalidDocument.
func NewPartialFromMap(m map[string]interface{}) (*Partial, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: no data", ErrInvalidDocument)
	}
	norm := normalize(m)
	if err := ValidateMap(norm); err != nil {
		return nil, err
	}
	b, err := json.Marshal(norm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var p Partial
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &p, nil
}

func normalize(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	for alias, key := range topLevelAliases {
		if v, ok := out[alias]; ok {
			if _, has := out[key]; !has {
				out[key] = v
			}
			delete(out, alias)
		}
	}

	for section, aliases := range recordSections {
		v, ok := out[section]
		if !ok {
			continue
		}
		out[section] = normalizeRecord(v, aliases)
	}
	for _, section := range listSections {
		if v, ok := out[section]; ok {
			out[section] = normalizeList(v)
		}
	}
	if v, ok := out["languages"]; ok {
		out["languages"] = normalizeCategories(v)
	}
	if v, ok := out["summary"]; ok {
		out["summary"] = normalizeScalar(v)
	}
	return out
}

func normalizeRecord(v interface{}, aliases map[string]string) interface{} {
	// single-entry sections sometimes come back as a list of entries
	if arr, ok := v.([]interface{}); ok {
		if len(arr) == 0 {
			return nil
		}
		v = arr[0]
	}
	rec, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	out := make(map[string]interface{}, len(rec))
	for k, fv := range rec {
		if canonical, ok := aliases[k]; ok {
			if _, has := rec[canonical]; has {
				continue
			}
			k = canonical
		}
		out[k] = normalizeScalar(fv)
	}
	return out
}

func normalizeList(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return []interface{}{t}
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, it := range t {
			if it == nil {
				continue
			}
			out = append(out, normalizeScalar(it))
		}
		return out
	default:
		return v
	}
}

func normalizeCategories(v interface{}) interface{} {
	switch t := v.(type) {
	case []interface{}, string:
		// an uncategorised skills list is kept rather than failing the reply
		list := normalizeList(t)
		slog.Debug("flat skills list filed under tools", "category", CategoryTools)
		return map[string]interface{}{string(CategoryTools): list}
	}
	rec, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	out := make(map[string]interface{}, len(Categories))
	for k, lv := range rec {
		c, ok := ParseCategory(strings.ToLower(strings.TrimSpace(k)))
		if !ok {
			continue
		}
		out[string(c)] = normalizeList(lv)
	}
	return out
}

func normalizeScalar(v interface{}) interface{} {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return v
	}
}
