package scheduling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	scheduling "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
)

func TestClassifyIssue(t *testing.T) {
	tests := map[string]struct {
		title       string
		description string
		expected    scheduling.Specialization
	}{
		"LeakyFaucet": {
			title:       "Leaky faucet in the kitchen",
			description: "water dripping constantly",
			expected:    scheduling.SpecPlumbing,
		},
		"CloggedDrain": {
			title:       "Bathroom problem",
			description: "the drain is completely clogged",
			expected:    scheduling.SpecPlumbing,
		},
		"SparkingOutlet": {
			title:       "Outlet sparks when plugging in",
			description: "",
			expected:    scheduling.SpecElectrical,
		},
		"BrokenThermostat": {
			title:       "Thermostat not responding",
			description: "apartment is freezing",
			expected:    scheduling.SpecHVAC,
		},
		"DeadFridge": {
			title:       "Refrigerator stopped working",
			description: "food is spoiling",
			expected:    scheduling.SpecApplianceRepair,
		},
		"LockedOut": {
			title:       "Locked out of apartment",
			description: "deadbolt jammed",
			expected:    scheduling.SpecLocksmith,
		},
		"PeelingPaint": {
			title:       "Peeling paint in the hallway",
			description: "",
			expected:    scheduling.SpecPainting,
		},
		"BrokenCabinet": {
			title:       "Kitchen cabinet fell off",
			description: "",
			expected:    scheduling.SpecCarpentry,
		},
		"CaseInsensitive": {
			title:       "LEAK under the SINK",
			description: "",
			expected:    scheduling.SpecPlumbing,
		},
		"DescriptionOnly": {
			title:       "Help needed",
			description: "the breaker keeps tripping",
			expected:    scheduling.SpecElectrical,
		},
		"NoMatch": {
			title:       "Something feels off",
			description: "not sure what it is",
			expected:    scheduling.SpecGeneralMaintenance,
		},
		"Empty": {
			title:       "",
			description: "",
			expected:    scheduling.SpecGeneralMaintenance,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, scheduling.ClassifyIssue(tc.title, tc.description))
		})
	}
}

func TestCanService(t *testing.T) {
	assert.True(t, scheduling.SpecPlumbing.CanService(scheduling.SpecPlumbing))
	assert.False(t, scheduling.SpecPlumbing.CanService(scheduling.SpecElectrical))

	// general_maintenance atende qualquer categoria
	for _, spec := range scheduling.AllSpecializations {
		assert.True(t, scheduling.SpecGeneralMaintenance.CanService(spec),
			"general maintenance should service %s", spec)
	}
}

func TestParseSpecialization(t *testing.T) {
	spec, ok := scheduling.ParseSpecialization("  Plumbing ")
	assert.True(t, ok)
	assert.Equal(t, scheduling.SpecPlumbing, spec)

	_, ok = scheduling.ParseSpecialization("gardening")
	assert.False(t, ok)
}
