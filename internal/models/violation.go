package models

import "time"

// Violation represents a single row of the building-violations dataset. Empty strings and nil pointers stand for values missing in the source.
type Violation struct {
	CaseNo             string     `json:"case_no"`
	City               string     `json:"violation_city"`
	Street             string     `json:"violation_street"`
	Description        string     `json:"description"`
	Code               string     `json:"code"`
	Status             string     `json:"status"`
	StatusTime         *time.Time `json:"status_dttm"`
	Latitude           *float64   `json:"latitude"`
	Longitude          *float64   `json:"longitude"`
	GroupedDescription string     `json:"grouped_description"`
}

// Year returns the year of the status timestamp, or false when it is missing.
func (v Violation) Year() (int, bool) {
	if v.StatusTime == nil {
		return 0, false
	}
	return v.StatusTime.Year(), true
}

// HasLocation reports whether both coordinates are present.
func (v Violation) HasLocation() bool {
	return v.Latitude != nil && v.Longitude != nil
}
