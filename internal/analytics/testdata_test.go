package analytics

import (
	"time"

	"violations-dashboard/internal/models"
)

func at(year int) *time.Time {
	t := time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC)
	return &t
}

func violation(city, code, description, status string, year int) models.Violation {
	v := models.Violation{
		City:        city,
		Code:        code,
		Description: description,
		Status:      status,
	}
	if year != 0 {
		v.StatusTime = at(year)
	}
	return v
}

func sampleDataset() Dataset {
	return NewDataset([]models.Violation{
		violation("Boston", "105.1", "Maintenance", "Open", 2015),
		violation("Boston", "102.8", "Failure to Obtain Permit", "Closed", 2018),
		violation("Dorchester", "105.1", "Maintenance", "Closed", 2019),
		violation("Roxbury", "116", "Unsafe Structures", "Closed", 2020),
		violation("Dorchester", "", "", "Pending", 0),
		violation("", "102.8", "Garages", "Open", 2021),
	})
}
