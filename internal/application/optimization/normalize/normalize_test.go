package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mission-optimizer-core/internal/domain/missiondata"
)

func TestNormalizeParsesTupleKeys(t *testing.T) {
	raw := map[string]interface{}{
		"materials":   []interface{}{"plastic", "textile"},
		"methods":     []interface{}{"extrude", "compress"},
		"outputs":     []interface{}{"filament", "insulation"},
		"items":       []interface{}{"spare_part"},
		"substitutes": []interface{}{"printed_part"},
		"weeks":       []interface{}{1.0, 2.0, 3.0},
		"yields": map[string]interface{}{
			"(plastic, extrude, filament)": 0.8,
		},
		"item_demands": map[string]interface{}{
			"(spare_part, 2)": 5.0,
		},
		"max_capacity": map[string]interface{}{
			"(extrude, 1)": 100.0,
		},
		"crew_available": map[string]interface{}{
			"1": 40.0,
			"2": 40.0,
		},
	}

	data, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, data.Weeks)
	assert.Equal(t, 0.8, data.Yields[missiondata.MaterialMethodOutputKey{
		Material: "plastic", Method: "extrude", Output: "filament",
	}])
	assert.Equal(t, 5.0, data.ItemDemands[missiondata.ItemWeekKey{Item: "spare_part", Week: 2}])
	assert.Equal(t, 100.0, data.MaxCapacity[missiondata.MethodWeekKey{Method: "extrude", Week: 1}])
	assert.Equal(t, 40.0, data.CrewAvailable[1])
}

func TestNormalizeDefaultsNestedMaps(t *testing.T) {
	data, err := Normalize(map[string]interface{}{
		"materials":   []interface{}{"plastic"},
		"methods":     []interface{}{"extrude"},
		"outputs":     []interface{}{"filament"},
		"items":       []interface{}{"spare_part"},
		"substitutes": []interface{}{"printed_part"},
		"weeks":       []interface{}{1.0},
	})
	require.NoError(t, err)

	assert.NotNil(t, data.InitialInventory.Materials)
	assert.NotNil(t, data.InitialInventory.Outputs)
	assert.NotNil(t, data.InitialInventory.Items)
	assert.NotNil(t, data.InitialInventory.Substitutes)
	assert.NotNil(t, data.SubstituteAssemblyCrew)
	assert.NotNil(t, data.SubstituteAssemblyEnergy)
	assert.NotNil(t, data.SubstitutesCanReplace)
	assert.Empty(t, data.Deadlines)
}

func TestNormalizeRejectsMalformedTupleKey(t *testing.T) {
	_, err := Normalize(map[string]interface{}{
		"yields": map[string]interface{}{
			"plastic-extrude-filament": 0.8,
		},
	})
	assert.Error(t, err)
}

func TestNormalizeRejectsNonIntegerWeekEntry(t *testing.T) {
	_, err := Normalize(map[string]interface{}{
		"weeks": []interface{}{1.0, "soon", 3.0},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weeks")
}
