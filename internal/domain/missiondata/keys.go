package missiondata

// Composite keys for the indexed parameters in the job payload. Each
// mirrors one of the tuple-encoded map keys described in the data model:
// the wire format flattens them into strings like "(plastic, extrude,
// filament)"; normalization parses them back into these structs.

// MaterialMethodOutputKey indexes yields[(m,r,o)].
type MaterialMethodOutputKey struct {
	Material string
	Method   string
	Output   string
}

// MethodWeekKey indexes max_capacity[(r,t)] and availability[(r,t)].
type MethodWeekKey struct {
	Method string
	Week   int
}

// ItemWeekKey indexes item_demands[(k,t)].
type ItemWeekKey struct {
	Item string
	Week int
}

// ItemMaterialKey indexes item_waste[(k,m)].
type ItemMaterialKey struct {
	Item     string
	Material string
}

// SubstituteMaterialKey indexes substitute_waste[(s,m)].
type SubstituteMaterialKey struct {
	Substitute string
	Material   string
}

// SubstituteOutputKey indexes substitute_make_recipe[(s,o)].
type SubstituteOutputKey struct {
	Substitute string
	Output     string
}
