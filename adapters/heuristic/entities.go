package heuristic

import (
	"strings"

	"hypoplan/domain/plan"
)

// ExtractEntities runs the fixed keyword checks. Each check fires at most
// once and checks do not look at each other's output.
func ExtractEntities(text string) plan.EntityBag {
	lower := strings.ToLower(text)
	bag := plan.NewEntityBag()

	if strings.Contains(lower, "revenue") || strings.Contains(lower, "profit") {
		bag.Metrics = append(bag.Metrics, "revenue")
		bag.DataSources = append(bag.DataSources, plan.SourceSalesData)
	}

	if strings.Contains(lower, "customer") {
		bag.Dimensions = append(bag.Dimensions, "customer")
		bag.DataSources = append(bag.DataSources, plan.SourceCustomerData)
	}

	if strings.Contains(lower, "california") || strings.Contains(lower, "new york") {
		bag.Dimensions = append(bag.Dimensions, "state")
		bag.Comparisons = append(bag.Comparisons, "geographic")
	}

	return bag
}
