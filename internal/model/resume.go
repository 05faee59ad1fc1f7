package model

// Go models for the resume form. JSON names match the form fields and the
// generation service payload.

// Category is a technical-skill bucket of the languages section.
type Category string

const (
	CategoryFrontend Category = "frontend"
	CategoryBackend  Category = "backend"
	CategoryDatabase Category = "database"
	CategoryDevops   Category = "devops"
	CategoryTools    Category = "tools"
)

// Categories is the fixed, ordered set of skill categories.
var Categories = []Category{
	CategoryFrontend,
	CategoryBackend,
	CategoryDatabase,
	CategoryDevops,
	CategoryTools,
}

// ParseCategory reports whether s names one of the fixed categories.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

type PersonalInformation struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Location    string `json:"location"`
	LinkedIn    string `json:"linkedIn"`
	GitHub      string `json:"gitHub"`
	Portfolio   string `json:"portfolio"`
	Resume      string `json:"resume"`
}

type Experience struct {
	CompanyName string `json:"companyName"`
	JobTitle    string `json:"jobTitle"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type Education struct {
	SchoolName     string `json:"schoolName"`
	Degree         string `json:"degree"`
	FieldOfStudy   string `json:"fieldOfStudy"`
	GraduationYear string `json:"graduationYear"`
	Location       string `json:"location"`
}

type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Website string `json:"website"`
}

// Resume is the canonical document held by a form session.
type Resume struct {
	PersonalInformation PersonalInformation   `json:"personalInformation"`
	Summary             string                `json:"summary"`
	Experience          Experience            `json:"experience"`
	Education           Education             `json:"education"`
	Achievements        []string              `json:"achievements"`
	SpokenLanguages     []string              `json:"spokenLanguages"`
	Certifications      []string              `json:"certifications"`
	Interests           []string              `json:"interests"`
	Languages           map[Category][]string `json:"languages"`
	Contact             Contact               `json:"contact"`
}

// placeholderRows is how many empty rows a list starts with so the form
// has something to type into.
const placeholderRows = 2

func placeholders() []string {
	return make([]string, placeholderRows)
}

// Default returns a fully populated empty document.
func Default() Resume {
	langs := make(map[Category][]string, len(Categories))
	for _, c := range Categories {
		langs[c] = placeholders()
	}
	return Resume{
		Achievements:    placeholders(),
		SpokenLanguages: placeholders(),
		Certifications:  placeholders(),
		Interests:       placeholders(),
		Languages:       langs,
	}
}

// Clone returns a deep copy. Missing lists or categories come back as empty,
// non-nil values.
func (r Resume) Clone() Resume {
	out := r
	out.Achievements = cloneList(r.Achievements)
	out.SpokenLanguages = cloneList(r.SpokenLanguages)
	out.Certifications = cloneList(r.Certifications)
	out.Interests = cloneList(r.Interests)
	out.Languages = make(map[Category][]string, len(Categories))
	for _, c := range Categories {
		out.Languages[c] = cloneList(r.Languages[c])
	}
	return out
}

func cloneList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Equal compares two documents field by field. A nil list equals an empty one.
func (r Resume) Equal(o Resume) bool {
	if r.PersonalInformation != o.PersonalInformation ||
		r.Summary != o.Summary ||
		r.Experience != o.Experience ||
		r.Education != o.Education ||
		r.Contact != o.Contact {
		return false
	}
	for _, pair := range [][2][]string{
		{r.Achievements, o.Achievements},
		{r.SpokenLanguages, o.SpokenLanguages},
		{r.Certifications, o.Certifications},
		{r.Interests, o.Interests},
	} {
		if !equalList(pair[0], pair[1]) {
			return false
		}
	}
	for _, c := range Categories {
		if !equalList(r.Languages[c], o.Languages[c]) {
			return false
		}
	}
	return true
}

func equalList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
