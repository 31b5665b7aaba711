package handlers

import (
	"time"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
)

const defaultTimezone = "America/Sao_Paulo"

// resolve o timezone oficial da empresa
func locationFromCompany(company *models.Company) *time.Location {
	if company != nil && company.Timezone != "" {
		if loc, err := time.LoadLocation(company.Timezone); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

func nowInCompany(company *models.Company) time.Time {
	return time.Now().In(locationFromCompany(company))
}

func parseDateInCompany(company *models.Company, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromCompany(company),
	)
}
