package usecase

import "resume-builder/internal/model"

// Merge backfills incoming over base. Record sections merge field by field
// and any field present in incoming wins, "" included. List sections and
// skill categories are replaced only when incoming supplies a non-empty
// list. A nil incoming returns a copy of base. Merge never fails and never
// aliases memory of either argument.
func Merge(base model.Resume, incoming *model.Partial) model.Resume {
	out := base.Clone()
	if incoming == nil {
		return out
	}

	if p := incoming.PersonalInformation; p != nil {
		pi := &out.PersonalInformation
		setIf(&pi.FullName, p.FullName)
		setIf(&pi.Email, p.Email)
		setIf(&pi.PhoneNumber, p.PhoneNumber)
		setIf(&pi.Location, p.Location)
		setIf(&pi.LinkedIn, p.LinkedIn)
		setIf(&pi.GitHub, p.GitHub)
		setIf(&pi.Portfolio, p.Portfolio)
		setIf(&pi.Resume, p.Resume)
	}

	setIf(&out.Summary, incoming.Summary)

	if e := incoming.Experience; e != nil {
		ex := &out.Experience
		setIf(&ex.CompanyName, e.CompanyName)
		setIf(&ex.JobTitle, e.JobTitle)
		setIf(&ex.Duration, e.Duration)
		setIf(&ex.Description, e.Description)
		setIf(&ex.Location, e.Location)
	}

	if e := incoming.Education; e != nil {
		ed := &out.Education
		setIf(&ed.SchoolName, e.SchoolName)
		setIf(&ed.Degree, e.Degree)
		setIf(&ed.FieldOfStudy, e.FieldOfStudy)
		setIf(&ed.GraduationYear, e.GraduationYear)
		setIf(&ed.Location, e.Location)
	}

	replaceIf(&out.Achievements, incoming.Achievements)
	replaceIf(&out.SpokenLanguages, incoming.SpokenLanguages)
	replaceIf(&out.Certifications, incoming.Certifications)
	replaceIf(&out.Interests, incoming.Interests)

	for _, c := range model.Categories {
		list := out.Languages[c]
		replaceIf(&list, incoming.Languages[c])
		out.Languages[c] = list
	}

	if c := incoming.Contact; c != nil {
		ct := &out.Contact
		setIf(&ct.Email, c.Email)
		setIf(&ct.Phone, c.Phone)
		setIf(&ct.Address, c.Address)
		setIf(&ct.Website, c.Website)
	}

	return out
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func replaceIf(dst *[]string, src []string) {
	if len(src) == 0 {
		return
	}
	list := make([]string, len(src))
	copy(list, src)
	*dst = list
}
