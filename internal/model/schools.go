package model

// School is a target university the applicant can aim the analysis at.
type School struct {
	ID   string
	Name string
	Vibe string // one-line admissions character used in the prompt
}

// MaxSchools is the most schools a single analysis can target.
const MaxSchools = 3

// Universities is the fixed table of selectable target schools.
var Universities = []School{
	{ID: "jhu", Name: "Johns Hopkins", Vibe: "Collaborative research, interdisciplinary impact, and curiosity beyond major."},
	{ID: "harvard", Name: "Harvard", Vibe: "Transformative leadership, global citizen, and intellectual vitality."},
	{ID: "mit", Name: "MIT", Vibe: "Mens et Manus (Mind and Hand), collaborative problem-solving, and humility."},
	{ID: "stanford", Name: "Stanford", Vibe: "Intellectual vitality, innovation, and interdisciplinary thinking."},
	{ID: "yale", Name: "Yale", Vibe: "Community contribution (\"And\" factor), global leadership, and curiosity."},
	{ID: "princeton", Name: "Princeton", Vibe: "Service to humanity, deep independent research, and undergraduate focus."},
	{ID: "uchicago", Name: "UChicago", Vibe: "\"The Life of the Mind,\" theoretical inquiry, and challenging norms."},
	{ID: "columbia", Name: "Columbia", Vibe: "The Core Curriculum, engaging with NYC, and intellectual diversity."},
	{ID: "upenn", Name: "UPenn", Vibe: "Interdisciplinary pragmatism, civic engagement, and applying knowledge."},
	{ID: "duke", Name: "Duke", Vibe: "Ambitious interdisciplinary problem solving, spirited community, and impact."},
	{ID: "berkeley", Name: "UC Berkeley", Vibe: "Changemaking, social justice, challenging the status quo, and scale."},
	{ID: "northwestern", Name: "Northwestern", Vibe: "Interdisciplinary flexibility (\"AND\" DNA), communication, and creativity."},
	{ID: "brown", Name: "Brown", Vibe: "The Open Curriculum, intellectual independence, and self-directed learning."},
	{ID: "cornell", Name: "Cornell", Vibe: "\"Any person... any study,\" practical application, and diversity of thought."},
	{ID: "dartmouth", Name: "Dartmouth", Vibe: "Sense of place, tight-knit community, and adventurous spirit."},
	{ID: "nyu", Name: "NYU", Vibe: "Urban integration, independence, and global perspective."},
	{ID: "ucla", Name: "UCLA", Vibe: "Optimism, diverse contributions, and academic excellence."},
}

// SchoolByID looks up a school in the Universities table.
func SchoolByID(id string) (School, bool) {
	for _, s := range Universities {
		if s.ID == id {
			return s, true
		}
	}
	return School{}, false
}

// SchoolsByIDs resolves a list of ids, skipping unknown ones and
// truncating to MaxSchools.
func SchoolsByIDs(ids []string) []School {
	var out []School
	for _, id := range ids {
		if s, ok := SchoolByID(id); ok {
			out = append(out, s)
			if len(out) == MaxSchools {
				break
			}
		}
	}
	return out
}
