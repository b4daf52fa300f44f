package models

import (
	"encoding/json"
	"strings"
)

// Portfolio is the résumé content shown on the public profile page.
//
// It decodes both the flat shape the web app sends (skills as strings) and
// the serializer shape of the profile endpoint (skills and technologies as
// {"name": ...} objects, numeric ids, "experiences").
type Portfolio struct {
	Projects    []Project    `json:"projects"`
	Education   []Education  `json:"education"`
	Experience  []Experience `json:"experience"`
	Skills      []string     `json:"skills"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

func (p *Portfolio) UnmarshalJSON(data []byte) error {
	type plain Portfolio
	var aux struct {
		plain
		Skills      json.RawMessage `json:"skills"`
		Experiences []Experience    `json:"experiences"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	skills, err := nameList(aux.Skills)
	if err != nil {
		return err
	}
	*p = Portfolio(aux.plain)
	p.Skills = skills
	if p.Experience == nil {
		p.Experience = aux.Experiences
	}
	return nil
}

type Project struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
}

func (pr *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var aux struct {
		plain
		ID           json.RawMessage `json:"id"`
		Technologies json.RawMessage `json:"technologies"`
		LiveURL      string          `json:"live_url"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	tech, err := nameList(aux.Technologies)
	if err != nil {
		return err
	}
	*pr = Project(aux.plain)
	pr.ID = idString(aux.ID)
	pr.Technologies = tech
	if pr.Link == "" {
		pr.Link = aux.LiveURL
	}
	return nil
}

type Education struct {
	ID          string `json:"id,omitempty"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Year        string `json:"year"`
}

func (e *Education) UnmarshalJSON(data []byte) error {
	type plain Education
	var aux struct {
		plain
		ID           json.RawMessage `json:"id"`
		FieldOfStudy string          `json:"field_of_study"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Education(aux.plain)
	e.ID = idString(aux.ID)
	if e.Field == "" {
		e.Field = aux.FieldOfStudy
	}
	return nil
}

type Experience struct {
	ID          string `json:"id,omitempty"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

func (e *Experience) UnmarshalJSON(data []byte) error {
	type plain Experience
	var aux struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Experience(aux.plain)
	e.ID = idString(aux.ID)
	return nil
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// nameList accepts ["go"] as well as [{"name":"go"}]. Absent or null gives nil.
func nameList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		var s string
		if err := json.Unmarshal(it, &s); err == nil {
			out = append(out, s)
			continue
		}
		var named struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(it, &named); err != nil {
			return nil, err
		}
		out = append(out, named.Name)
	}
	return out, nil
}

// idString renders a string or numeric id as text.
func idString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
