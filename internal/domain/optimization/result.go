package optimization

// Result is the canonical result document published for a solved job.
type Result struct {
	Schedule     []WeekSchedule     `json:"schedule"`
	Outputs      []OutputResult     `json:"outputs"`
	Substitutes  []SubstituteResult `json:"substitutes"`
	Items        []ItemResult       `json:"items"`
	Summary      Summary            `json:"summary"`
	SolverStatus SolverStatus       `json:"solver_status"`
}

// WeekSchedule is one week's per-method processing activity.
type WeekSchedule struct {
	Week    int                         `json:"week"`
	Methods map[string]MethodWeekResult `json:"methods"`
}

// MethodWeekResult is one method's activity in one week.
type MethodWeekResult struct {
	ProcessedKg float64            `json:"processed_kg"`
	IsRunning   int                `json:"is_running"`
	ByMaterial  map[string]float64 `json:"by_material"`
}

// OutputResult is one output's per-week production/inventory trajectory.
type OutputResult struct {
	Output string       `json:"output"`
	Weeks  []OutputWeek `json:"weeks"`
}

// OutputWeek is one week's entry for an OutputResult.
type OutputWeek struct {
	Week        int     `json:"week"`
	ProducedKg  float64 `json:"produced_kg"`
	InventoryKg float64 `json:"inventory_kg"`
}

// SubstituteResult is one substitute's per-week fabrication/usage trajectory.
type SubstituteResult struct {
	Substitute string           `json:"substitute"`
	Weeks      []SubstituteWeek `json:"weeks"`
}

// SubstituteWeek is one week's entry for a SubstituteResult.
type SubstituteWeek struct {
	Week      int                `json:"week"`
	Made      float64            `json:"made"`
	Inventory float64            `json:"inventory"`
	UsedFor   map[string]float64 `json:"used_for"`
}

// ItemResult is one item's per-week demand-satisfaction trajectory.
type ItemResult struct {
	Item  string     `json:"item"`
	Weeks []ItemWeek `json:"weeks"`
}

// ItemWeek is one week's entry for an ItemResult.
type ItemWeek struct {
	Week        int     `json:"week"`
	UsedTotal   float64 `json:"used_total"`
	UsedCarried float64 `json:"used_carried"`
	Shortage    float64 `json:"shortage"`
}

// CarriedWeightLoss summarizes one item's carried-stock mass trajectory
// across the whole horizon.
type CarriedWeightLoss struct {
	InitialUnits    float64 `json:"initial_units"`
	UnitsUsed       float64 `json:"units_used"`
	FinalUnits      float64 `json:"final_units"`
	MassPerUnit     float64 `json:"mass_per_unit"`
	InitialWeight   float64 `json:"initial_weight"`
	FinalWeight     float64 `json:"final_weight"`
	TotalWeightLoss float64 `json:"total_weight_loss"`
}

// Summary aggregates the whole-horizon totals read off the solution.
type Summary struct {
	ObjectiveValue             float64                      `json:"objective_value"`
	TotalProcessedKg           float64                      `json:"total_processed_kg"`
	TotalOutputProducedKg      float64                      `json:"total_output_produced_kg"`
	TotalSubstitutesMade       float64                      `json:"total_substitutes_made"`
	SubstituteBreakdown        map[string]float64           `json:"substitute_breakdown"`
	TotalInitialCarriageWeight float64                      `json:"total_initial_carriage_weight"`
	TotalFinalCarriageWeight   float64                      `json:"total_final_carriage_weight"`
	TotalCarriedWeightLoss     float64                      `json:"total_carried_weight_loss"`
	CarriedWeightLossByItem    map[string]CarriedWeightLoss `json:"carried_weight_loss_by_item"`
}

// SolverStatus is the simple, JSON-safe summary of the backend's outcome.
type SolverStatus struct {
	Status               string `json:"status"`
	TerminationCondition string `json:"termination_condition"`
}
