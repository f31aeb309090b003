// Package validate enumerates every constraint violation in a normalized
// job payload before returning, so callers see a complete diagnosis rather
// than stopping at the first problem.
package validate

import (
	"github.com/andrescamacho/mission-optimizer-core/internal/domain/missiondata"
	"github.com/andrescamacho/mission-optimizer-core/internal/domain/shared"
)

// Validate checks a normalized Data record against the invariants in the
// data model: required sets present and non-empty, every indexed key
// referencing a known entity, availability values in {0,1}, and
// non-negative numeric values where required. It returns nil when the
// payload is well-formed, or a *shared.ValidationErrors aggregating every
// violation otherwise.
func Validate(data *missiondata.Data) error {
	errs := shared.NewValidationErrors()

	materials := toSet(data.Materials)
	methods := toSet(data.Methods)
	outputs := toSet(data.Outputs)
	items := toSet(data.Items)
	substitutes := toSet(data.Substitutes)
	weeks := toWeekSet(data.Weeks)

	requireNonEmpty(errs, "materials", len(data.Materials))
	requireNonEmpty(errs, "methods", len(data.Methods))
	requireNonEmpty(errs, "outputs", len(data.Outputs))
	requireNonEmpty(errs, "items", len(data.Items))
	requireNonEmpty(errs, "substitutes", len(data.Substitutes))
	requireNonEmpty(errs, "weeks", len(data.Weeks))

	for key, v := range data.Yields {
		if !materials[key.Material] {
			errs.Add("yields", "material '%s' not in materials", key.Material)
		}
		if !methods[key.Method] {
			errs.Add("yields", "method '%s' not in methods", key.Method)
		}
		if !outputs[key.Output] {
			errs.Add("yields", "output '%s' not in outputs", key.Output)
		}
		if v < 0 {
			errs.Add("yields", "value for (%s,%s,%s) must be >= 0", key.Material, key.Method, key.Output)
		}
	}

	for key, v := range data.MaxCapacity {
		if !methods[key.Method] {
			errs.Add("max_capacity", "method '%s' not in methods", key.Method)
		}
		if !weeks[key.Week] {
			errs.Add("max_capacity", "week '%d' not in weeks", key.Week)
		}
		if v < 0 {
			errs.Add("max_capacity", "value for (%s,%d) must be >= 0", key.Method, key.Week)
		}
	}

	for key, v := range data.Availability {
		if !methods[key.Method] {
			errs.Add("availability", "method '%s' not in methods", key.Method)
		}
		if !weeks[key.Week] {
			errs.Add("availability", "week '%d' not in weeks", key.Week)
		}
		if v != 0 && v != 1 {
			errs.Add("availability", "value for (%s,%d) must be 0 or 1", key.Method, key.Week)
		}
	}

	for key, v := range data.ItemDemands {
		if !items[key.Item] {
			errs.Add("item_demands", "item '%s' not in items", key.Item)
		}
		if !weeks[key.Week] {
			errs.Add("item_demands", "week '%d' not in weeks", key.Week)
		}
		if v < 0 {
			errs.Add("item_demands", "value for (%s,%d) must be >= 0", key.Item, key.Week)
		}
	}

	for key, v := range data.ItemWaste {
		if !items[key.Item] {
			errs.Add("item_waste", "item '%s' not found", key.Item)
		}
		if !materials[key.Material] {
			errs.Add("item_waste", "material '%s' not found", key.Material)
		}
		if v < 0 {
			errs.Add("item_waste", "value for (%s,%s) must be >= 0", key.Item, key.Material)
		}
	}

	for key, v := range data.SubstituteWaste {
		if !substitutes[key.Substitute] {
			errs.Add("substitute_waste", "substitute '%s' not found", key.Substitute)
		}
		if !materials[key.Material] {
			errs.Add("substitute_waste", "material '%s' not found", key.Material)
		}
		if v < 0 {
			errs.Add("substitute_waste", "value for (%s,%s) must be >= 0", key.Substitute, key.Material)
		}
	}

	for key, v := range data.SubstituteMakeRecipe {
		if !substitutes[key.Substitute] {
			errs.Add("substitute_make_recipe", "substitute '%s' not in substitutes", key.Substitute)
		}
		if !outputs[key.Output] {
			errs.Add("substitute_make_recipe", "output '%s' not in outputs", key.Output)
		}
		if v < 0 {
			errs.Add("substitute_make_recipe", "value for (%s,%s) must be >= 0", key.Substitute, key.Output)
		}
	}

	for item, subs := range data.SubstitutesCanReplace {
		if !items[item] {
			errs.Add("substitutes_can_replace", "'%s' not in items", item)
		}
		for _, s := range subs {
			if !substitutes[s] {
				errs.Add("substitutes_can_replace", "'%s' not in substitutes", s)
			}
		}
	}

	for _, dl := range data.Deadlines {
		if !items[dl.Item] {
			errs.Add("deadlines", "item '%s' not in items", dl.Item)
		}
		if !weeks[dl.Week] {
			errs.Add("deadlines", "week '%d' not in weeks", dl.Week)
		}
		if dl.Amount < 0 {
			errs.Add("deadlines", "amount for (%s,%d) must be >= 0", dl.Item, dl.Week)
		}
	}

	return errs.AsError()
}

func requireNonEmpty(errs *shared.ValidationErrors, field string, n int) {
	if n == 0 {
		errs.Add(field, "must be a non-empty list")
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func toWeekSet(weeks []int) map[int]bool {
	set := make(map[int]bool, len(weeks))
	for _, w := range weeks {
		set[w] = true
	}
	return set
}

