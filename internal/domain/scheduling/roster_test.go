package scheduling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scheduling "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
)

func TestBestMatchPrefersExactSpecialization(t *testing.T) {
	general := makeWorker(scheduling.SpecGeneralMaintenance, true)
	plumber := makeWorker(scheduling.SpecPlumbing, true)
	electrician := makeWorker(scheduling.SpecElectrical, true)

	req := makeRequest(scheduling.SpecPlumbing, scheduling.UrgencyNormal)

	best := scheduling.BestMatch([]*models.Worker{general, plumber, electrician}, req, testNow)
	require.NotNil(t, best)
	assert.Equal(t, plumber.ID, best.ID)
}

func TestBestMatchNoEligibleWorker(t *testing.T) {
	electrician := makeWorker(scheduling.SpecElectrical, true)
	inactive := makeWorker(scheduling.SpecPlumbing, false)

	req := makeRequest(scheduling.SpecPlumbing, scheduling.UrgencyNormal)

	assert.Nil(t, scheduling.BestMatch([]*models.Worker{electrician, inactive}, req, testNow))
	assert.Nil(t, scheduling.BestMatch(nil, req, testNow))
}

func TestWithSpecialization(t *testing.T) {
	plumber := makeWorker(scheduling.SpecPlumbing, true)
	general := makeWorker(scheduling.SpecGeneralMaintenance, true)
	electrician := makeWorker(scheduling.SpecElectrical, true)
	inactivePlumber := makeWorker(scheduling.SpecPlumbing, false)

	out := scheduling.WithSpecialization(
		[]*models.Worker{plumber, general, electrician, inactivePlumber},
		scheduling.SpecPlumbing,
	)

	require.Len(t, out, 2)
	assert.Equal(t, plumber.ID, out[0].ID)
	assert.Equal(t, general.ID, out[1].ID)
}

func TestAvailableOnDate(t *testing.T) {
	free := makeWorker(scheduling.SpecPlumbing, true)
	booked := makeWorker(scheduling.SpecPlumbing, true)
	inactive := makeWorker(scheduling.SpecPlumbing, false)

	addBooking(t, booked, day(5))
	addBooking(t, booked, day(5))

	out := scheduling.AvailableOnDate([]*models.Worker{free, booked, inactive}, day(5))
	require.Len(t, out, 1)
	assert.Equal(t, free.ID, out[0].ID)

	out = scheduling.AvailableOnDate([]*models.Worker{free, booked, inactive}, day(6))
	assert.Len(t, out, 2)
}

func TestWithLightWorkload(t *testing.T) {
	light := makeWorker(scheduling.SpecPlumbing, true)
	heavy := makeWorker(scheduling.SpecPlumbing, true)

	addBooking(t, light, day(1))
	for i := 1; i <= 4; i++ {
		addBooking(t, heavy, day(i))
	}

	out := scheduling.WithLightWorkload([]*models.Worker{light, heavy}, 2, testNow)
	require.Len(t, out, 1)
	assert.Equal(t, light.ID, out[0].ID)
}

func TestAvailableForEmergency(t *testing.T) {
	capable := makeWorker(scheduling.SpecPlumbing, true)
	capable.EmergencyCapable = true

	plain := makeWorker(scheduling.SpecPlumbing, true)

	inactiveCapable := makeWorker(scheduling.SpecPlumbing, false)
	inactiveCapable.EmergencyCapable = true

	out := scheduling.AvailableForEmergency([]*models.Worker{capable, plain, inactiveCapable})
	require.Len(t, out, 1)
	assert.Equal(t, capable.ID, out[0].ID)
}

func TestRecommendationsOrderingAndTopN(t *testing.T) {
	plumberFree := makeWorker(scheduling.SpecPlumbing, true)
	plumberBusy := makeWorker(scheduling.SpecPlumbing, true)
	general := makeWorker(scheduling.SpecGeneralMaintenance, true)
	electrician := makeWorker(scheduling.SpecElectrical, true)

	for i := 1; i <= 3; i++ {
		addBooking(t, plumberBusy, day(i))
	}

	req := makeRequest(scheduling.SpecPlumbing, scheduling.UrgencyNormal)
	workers := []*models.Worker{general, plumberBusy, electrician, plumberFree}

	recs := scheduling.Recommendations(workers, req, 0, testNow)
	require.Len(t, recs, 3, "electrician is not eligible")

	assert.Equal(t, plumberFree.ID, recs[0].Worker.ID)
	assert.Equal(t, plumberBusy.ID, recs[1].Worker.ID)
	assert.Equal(t, general.ID, recs[2].Worker.ID)

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
	assert.NotEmpty(t, recs[0].Reasoning)

	top2 := scheduling.Recommendations(workers, req, 2, testNow)
	require.Len(t, top2, 2)
	assert.Equal(t, plumberFree.ID, top2[0].Worker.ID)
}

func TestRecommendationsTieBreakByName(t *testing.T) {
	a := makeWorker(scheduling.SpecPlumbing, true)
	b := makeWorker(scheduling.SpecPlumbing, true)
	a.Name = "Zilda"
	b.Name = "Ana"

	req := makeRequest(scheduling.SpecPlumbing, scheduling.UrgencyNormal)

	recs := scheduling.Recommendations([]*models.Worker{a, b}, req, 0, testNow)
	require.Len(t, recs, 2)
	assert.Equal(t, "Ana", recs[0].Worker.Name)
}

func TestGroupBySpecialization(t *testing.T) {
	plumber := makeWorker(scheduling.SpecPlumbing, true)
	plumber2 := makeWorker(scheduling.SpecPlumbing, true)
	electrician := makeWorker(scheduling.SpecElectrical, true)
	inactive := makeWorker(scheduling.SpecHVAC, false)

	groups := scheduling.GroupBySpecialization([]*models.Worker{plumber, plumber2, electrician, inactive})

	require.Len(t, groups, 2)
	assert.Len(t, groups[scheduling.SpecPlumbing], 2)
	assert.Len(t, groups[scheduling.SpecElectrical], 1)
	assert.NotContains(t, groups, scheduling.SpecHVAC)
}

func TestWorkloadDistribution(t *testing.T) {
	w1 := makeWorker(scheduling.SpecPlumbing, true)
	w2 := makeWorker(scheduling.SpecElectrical, true)
	w3 := makeWorker(scheduling.SpecGeneralMaintenance, true)
	inactive := makeWorker(scheduling.SpecPlumbing, false)

	stats := scheduling.WorkloadDistribution([]*models.Worker{w1, w2, w3, inactive}, testNow)

	assert.Equal(t, 3, stats.TotalWorkers)
	assert.Equal(t, 0.0, stats.AverageWorkload)
	assert.Equal(t, 0, stats.MinWorkload)
	assert.Equal(t, 0, stats.MaxWorkload)
	assert.Equal(t, 0, stats.OverloadedWorkers)
}

func TestWorkloadDistributionEmpty(t *testing.T) {
	stats := scheduling.WorkloadDistribution(nil, testNow)

	assert.Equal(t, 0, stats.TotalWorkers)
	assert.Equal(t, 0.0, stats.AverageWorkload)
	assert.Equal(t, 0, stats.MinWorkload)
	assert.Equal(t, 0, stats.MaxWorkload)
	assert.Equal(t, 0, stats.OverloadedWorkers)
}

func TestWorkloadDistributionCounts(t *testing.T) {
	light := makeWorker(scheduling.SpecPlumbing, true)
	overloaded := makeWorker(scheduling.SpecPlumbing, true)

	addBooking(t, light, day(1))
	for i := 1; i <= 9; i++ {
		addBooking(t, overloaded, day(i))
	}

	stats := scheduling.WorkloadDistribution([]*models.Worker{light, overloaded}, testNow)

	assert.Equal(t, 2, stats.TotalWorkers)
	assert.Equal(t, 1, stats.MinWorkload)
	assert.Equal(t, 9, stats.MaxWorkload)
	assert.Equal(t, 5.0, stats.AverageWorkload)
	assert.Equal(t, 1, stats.OverloadedWorkers)
}
