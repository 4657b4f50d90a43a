package models

import "strings"

// Location keeps the raw location string plus a best-effort city/country
// split. Both derived fields stay empty when the raw string has no comma.
type Location struct {
	Location string `json:"location"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

func NewLocation(raw string) Location {
	loc := Location{Location: raw}
	if idx := strings.Index(raw, ","); idx >= 0 {
		parts := strings.Split(raw, ",")
		loc.City = strings.TrimSpace(parts[0])
		loc.Country = strings.TrimSpace(parts[len(parts)-1])
	}
	return loc
}

// Company fields are free text as rendered; the employee count is not
// numeric-validated.
type Company struct {
	Name      string `json:"name"`
	Industry  string `json:"industry"`
	Employees string `json:"employees"`
}

type Job struct {
	Position  string   `json:"position"`
	Company   Company  `json:"company"`
	Location  Location `json:"location"`
	DateRange string   `json:"date_range"`
}

// Profile is the full record scraped from a profile page. Jobs are ordered
// most-recent-first, as the source renders them.
type Profile struct {
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Skills []string `json:"skills"`
	Jobs   []Job    `json:"jobs"`
}
