package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntitiesRevenue(t *testing.T) {
	entities := ExtractEntities("Customers from California have higher revenue")

	assert.Contains(t, entities.Metrics, "revenue")
	assert.Contains(t, entities.Dimensions, "customer")
	assert.Contains(t, entities.DataSources, "sales_data")
	assert.Contains(t, entities.DataSources, "customer_data")
	assert.Equal(t, []string{"sales_data", "customer_data"}, entities.DataSources)
}

func TestExtractEntitiesGeographic(t *testing.T) {
	entities := ExtractEntities("California customers are more profitable than New York customers")

	assert.Equal(t, []string{"customer", "state"}, entities.Dimensions)
	assert.Equal(t, []string{"geographic"}, entities.Comparisons)
	assert.Equal(t, []string{"revenue"}, entities.Metrics, "profit triggers the revenue metric")
}

func TestExtractEntitiesNothingMatches(t *testing.T) {
	entities := ExtractEntities("Some random business question")

	assert.True(t, entities.IsEmpty())
	assert.NotNil(t, entities.Metrics)
	assert.NotNil(t, entities.DataSources)
}

func TestExtractEntitiesEachCheckFiresOnce(t *testing.T) {
	entities := ExtractEntities("revenue revenue profit customer customers new york california")

	assert.Equal(t, []string{"revenue"}, entities.Metrics)
	assert.Equal(t, []string{"customer", "state"}, entities.Dimensions)
	assert.Equal(t, []string{"sales_data", "customer_data"}, entities.DataSources)
}
