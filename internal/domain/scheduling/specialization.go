package scheduling

import "strings"

// ===============================
// Specialization
// ===============================

type Specialization string

const (
	SpecPlumbing           Specialization = "plumbing"
	SpecElectrical         Specialization = "electrical"
	SpecHVAC               Specialization = "hvac"
	SpecPainting           Specialization = "painting"
	SpecCarpentry          Specialization = "carpentry"
	SpecLocksmith          Specialization = "locksmith"
	SpecApplianceRepair    Specialization = "appliance_repair"
	SpecGeneralMaintenance Specialization = "general_maintenance"
)

var AllSpecializations = []Specialization{
	SpecPlumbing,
	SpecElectrical,
	SpecHVAC,
	SpecPainting,
	SpecCarpentry,
	SpecLocksmith,
	SpecApplianceRepair,
	SpecGeneralMaintenance,
}

func ParseSpecialization(s string) (Specialization, bool) {
	sp := Specialization(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllSpecializations {
		if sp == known {
			return known, true
		}
	}
	return "", false
}

func (s Specialization) IsValid() bool {
	_, ok := ParseSpecialization(string(s))
	return ok
}

// CanService define a única regra de compatibilidade de especialização:
// igual à exigida, ou general_maintenance (atende qualquer categoria
// com prioridade menor). Todo o resto do engine consome esta função.
func (s Specialization) CanService(required Specialization) bool {
	return s == required || s == SpecGeneralMaintenance
}

func (s Specialization) DisplayName() string {
	switch s {
	case SpecPlumbing:
		return "Plumbing"
	case SpecElectrical:
		return "Electrical"
	case SpecHVAC:
		return "HVAC"
	case SpecPainting:
		return "Painting"
	case SpecCarpentry:
		return "Carpentry"
	case SpecLocksmith:
		return "Locksmith"
	case SpecApplianceRepair:
		return "Appliance Repair"
	case SpecGeneralMaintenance:
		return "General Maintenance"
	}
	return string(s)
}

// ===============================
// Issue Classifier
// ===============================

// Ordem importa: a primeira categoria com keyword presente vence.
var issueKeywords = []struct {
	spec     Specialization
	keywords []string
}{
	{SpecPlumbing, []string{
		"leak", "pipe", "faucet", "drain", "toilet", "sink",
		"water heater", "clog", "sewage", "shower",
	}},
	{SpecElectrical, []string{
		"outlet", "breaker", "wiring", "socket", "electrical",
		"short circuit", "sparks", "light fixture", "power out",
	}},
	{SpecHVAC, []string{
		"heating", "cooling", "air conditioning", "a/c", "ac unit",
		"furnace", "thermostat", "ventilation", "hvac", "radiator",
	}},
	{SpecApplianceRepair, []string{
		"refrigerator", "fridge", "oven", "stove", "dishwasher",
		"washer", "dryer", "microwave", "appliance",
	}},
	{SpecLocksmith, []string{
		"lock", "key stuck", "deadbolt", "latch", "locked out",
	}},
	{SpecPainting, []string{
		"paint", "repaint", "peeling", "wall stain",
	}},
	{SpecCarpentry, []string{
		"door frame", "cabinet", "shelf", "window frame", "wood",
		"drywall", "floorboard", "hinge",
	}},
}

// ClassifyIssue mapeia título + descrição livres para uma categoria
// fechada. Match por substring case-insensitive; sem match → general.
func ClassifyIssue(title, description string) Specialization {
	text := strings.ToLower(title + " " + description)

	for _, entry := range issueKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.spec
			}
		}
	}

	return SpecGeneralMaintenance
}
