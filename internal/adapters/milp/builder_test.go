package milp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mission-optimizer-core/internal/domain/missiondata"
)

func TestEligibleChecksSubstitutesCanReplace(t *testing.T) {
	data := &missiondata.Data{
		SubstitutesCanReplace: map[string][]string{
			"bolt": {"rivet", "pin"},
		},
	}
	assert.True(t, eligible(data, "rivet", "bolt"))
	assert.True(t, eligible(data, "pin", "bolt"))
	assert.False(t, eligible(data, "screw", "bolt"))
	assert.False(t, eligible(data, "rivet", "unknown-item"))
}

// minimalFixture is a small, internally consistent two-week instance: one
// material feeding one method into one output, one item with demand fully
// covered by carried stock, and one substitute eligible to stand in for it.
func minimalFixture() *missiondata.Data {
	return &missiondata.Data{
		Materials:   []string{"resin"},
		Methods:     []string{"extrude"},
		Outputs:     []string{"filament"},
		Items:       []string{"bolt"},
		Substitutes: []string{"rivet"},
		Weeks:       []int{1, 2},
		InitialInventory: missiondata.InitialInventory{
			Materials:   map[string]float64{"resin": 100},
			Outputs:     map[string]float64{"filament": 0},
			Items:       map[string]float64{"bolt": 10},
			Substitutes: map[string]float64{"rivet": 0},
		},
		ItemMass:           map[string]float64{"bolt": 1},
		ItemLifetime:       map[string]int{"bolt": 1},
		SubstituteLifetime: map[string]int{"rivet": 1},
		ItemDemands: map[missiondata.ItemWeekKey]float64{
			{Item: "bolt", Week: 1}: 5,
			{Item: "bolt", Week: 2}: 5,
		},
		Yields: map[missiondata.MaterialMethodOutputKey]float64{
			{Material: "resin", Method: "extrude", Output: "filament"}: 1,
		},
		MaxCapacity: map[missiondata.MethodWeekKey]float64{
			{Method: "extrude", Week: 1}: 50,
			{Method: "extrude", Week: 2}: 50,
		},
		MinLotSize: map[string]float64{},
		Availability: map[missiondata.MethodWeekKey]float64{
			{Method: "extrude", Week: 1}: 1,
			{Method: "extrude", Week: 2}: 1,
		},
		CrewCost:        map[string]float64{"extrude": 1},
		EnergyCost:      map[string]float64{"extrude": 1},
		CrewAvailable:   map[int]float64{1: 100, 2: 100},
		EnergyAvailable: map[int]float64{1: 100, 2: 100},
		RiskCost:        map[string]float64{"extrude": 0},
		OutputValues:    map[string]float64{"filament": 1},
		SubstitutesCanReplace: map[string][]string{
			"bolt": {"rivet"},
		},
		Weights: missiondata.Weights{
			Mass: 1, Value: 1, Crew: 1, Energy: 1, Risk: 1,
			Make: 1, Carry: -1, Shortage: 1000,
		},
	}
}

func TestBuildCreatesOneVariablePerIndexTuple(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	data := minimalFixture()

	model, err := engine.Build(data)
	require.NoError(t, err)

	bm, ok := model.(*builtModel)
	require.True(t, ok)

	assert.Len(t, bm.p, len(data.Materials)*len(data.Methods)*len(data.Weeks))
	assert.Len(t, bm.q, len(data.Methods)*len(data.Weeks))
	assert.Len(t, bm.y, len(data.Methods)*len(data.Weeks))
	assert.Len(t, bm.oProd, len(data.Outputs)*len(data.Weeks))
	assert.Len(t, bm.oInv, len(data.Outputs)*len(data.Weeks))
	assert.Len(t, bm.mInv, len(data.Materials)*len(data.Weeks))
	assert.Len(t, bm.makeSub, len(data.Substitutes)*len(data.Weeks))
	assert.Len(t, bm.subInv, len(data.Substitutes)*len(data.Weeks))
	assert.Len(t, bm.subUsedFor, len(data.Substitutes)*len(data.Items)*len(data.Weeks))
	assert.Len(t, bm.carryUsed, len(data.Items)*len(data.Weeks))
	assert.Len(t, bm.itemUsed, len(data.Items)*len(data.Weeks))
	assert.Len(t, bm.itemShort, len(data.Items)*len(data.Weeks))

	assert.Equal(t, 1, bm.firstWeek)
	assert.Equal(t, map[int]int{2: 1}, bm.prevWeek)
}

func TestBuildReturnsErrorNeverForWellFormedData(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	_, err := engine.Build(minimalFixture())
	assert.NoError(t, err)
}

// TestSolveRespectsCapacityAndPopulatesEveryWeekSchedule runs the minimal
// fixture through Build, Solve, and Extract against a real backend and
// checks the capacity invariant from the data model's §4.2
// (processed_kg[r,t] <= max_capacity[r,t]) and that every method appears in
// every week's schedule regardless of whether it ran that week.
func TestSolveRespectsCapacityAndPopulatesEveryWeekSchedule(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	data := minimalFixture()

	model, err := engine.Build(data)
	require.NoError(t, err)

	solution, err := engine.Solve(context.Background(), model)
	require.NoError(t, err)

	result, err := engine.Extract(data, model, solution)
	require.NoError(t, err)
	require.Equal(t, "ok", result.SolverStatus.Status)

	for _, week := range result.Schedule {
		maxCap := data.MaxCapacity[missiondata.MethodWeekKey{Method: "extrude", Week: week.Week}]
		m, ok := week.Methods["extrude"]
		require.True(t, ok, "every configured method must have an entry for week %d even when idle", week.Week)
		assert.LessOrEqual(t, m.ProcessedKg, maxCap)
		assert.GreaterOrEqual(t, m.ProcessedKg, 0.0)
	}

	// Demand for bolt is fully covered by carried stock and eligible
	// substitution, so no shortage should remain.
	for _, item := range result.Items {
		for _, week := range item.Weeks {
			assert.Zero(t, week.Shortage, "item %s week %d should have no shortage", item.Item, week.Week)
		}
	}
}

// TestExtractPopulatesZeroValuedEntriesInsteadOfOmittingThem guards against
// the schedule/by_material/used_for maps silently dropping an entity that
// had no activity in a given week; the response schema always has one key
// per configured entity, never a sparse map.
func TestExtractPopulatesZeroValuedEntriesInsteadOfOmittingThem(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	data := minimalFixture()
	// Make the method unavailable in week 2 so it is guaranteed idle that
	// week, and demand is covered entirely by carried stock instead.
	data.Availability[missiondata.MethodWeekKey{Method: "extrude", Week: 2}] = 0
	data.InitialInventory.Items["bolt"] = 20

	model, err := engine.Build(data)
	require.NoError(t, err)
	solution, err := engine.Solve(context.Background(), model)
	require.NoError(t, err)
	result, err := engine.Extract(data, model, solution)
	require.NoError(t, err)
	require.Equal(t, "ok", result.SolverStatus.Status)

	for _, week := range result.Schedule {
		if week.Week != 2 {
			continue
		}
		m, ok := week.Methods["extrude"]
		require.True(t, ok)
		assert.Equal(t, 0, m.IsRunning)
		_, hasMaterial := m.ByMaterial["resin"]
		assert.True(t, hasMaterial, "by_material must list resin even though it was not consumed")
		assert.Equal(t, 0.0, m.ByMaterial["resin"])
	}

	for _, sub := range result.Substitutes {
		for _, week := range sub.Weeks {
			_, hasItem := week.UsedFor["bolt"]
			assert.True(t, hasItem, "used_for must list bolt even when the substitute was not used for it that week")
		}
	}
}
