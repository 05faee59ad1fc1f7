package render

// DefaultLabels returns the English headings used when no override is given.
func DefaultLabels() map[string]string {
	return map[string]string{
		"summary":          "Professional Summary",
		"experience":       "Experience",
		"education":        "Education",
		"skills":           "Technical Skills",
		"achievements":     "Achievements",
		"certifications":   "Certifications",
		"spoken_languages": "Languages",
		"interests":        "Interests",
		"contact":          "Contact",
		"frontend":         "Frontend",
		"backend":          "Backend",
		"database":         "Database",
		"devops":           "DevOps",
		"tools":            "Tools",
		"email":            "Email",
		"phone":            "Phone",
		"address":          "Address",
		"website":          "Website",
		"linkedin":         "LinkedIn",
		"github":           "GitHub",
		"portfolio":        "Portfolio",
		"resume":           "Resume",
	}
}

// mergeLabels overlays non-empty overrides on the defaults.
func mergeLabels(overrides map[string]string) map[string]string {
	out := DefaultLabels()
	for k, v := range overrides {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
