package milp

// Composite keys for the decision variable families. These are internal to
// the builder/extractor and distinct from missiondata's parameter keys:
// variables are indexed per (entity, week) or wider tuples, not always the
// same shape as the parameters that feed their coefficients.

type materialMethodWeekKey struct {
	Material string
	Method   string
	Week     int
}

type methodWeekKey struct {
	Method string
	Week   int
}

type outputWeekKey struct {
	Output string
	Week   int
}

type materialWeekKey struct {
	Material string
	Week     int
}

type substituteWeekKey struct {
	Substitute string
	Week       int
}

type substituteItemWeekKey struct {
	Substitute string
	Item       string
	Week       int
}

type itemWeekKey struct {
	Item string
	Week int
}
