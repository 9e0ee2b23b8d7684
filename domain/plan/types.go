package plan

import (
	"encoding/json"

	"hypoplan/domain/core"
)

const (
	// DefaultConfidence is attached to every successful response. It is a
	// static placeholder, not a score derived from the input.
	DefaultConfidence = 0.85

	// DefaultConfidenceThreshold is the significance level carried by every plan.
	DefaultConfidenceThreshold = 0.05
)

// Data source tags produced by entity extraction.
const (
	SourceCustomerData = "customer_data"
	SourceSalesData    = "sales_data"
)

// DefaultRequiredData is used when extraction finds no data source.
func DefaultRequiredData() []string {
	return []string{SourceCustomerData, SourceSalesData}
}

// EntityBag holds the coarse tags pulled out of hypothesis text.
type EntityBag struct {
	Metrics     []string `json:"metrics"`
	Dimensions  []string `json:"dimensions"`
	Comparisons []string `json:"comparisons"`
	DataSources []string `json:"data_sources"`
}

// NewEntityBag returns a bag whose lists serialize as [] rather than null.
func NewEntityBag() EntityBag {
	return EntityBag{
		Metrics:     []string{},
		Dimensions:  []string{},
		Comparisons: []string{},
		DataSources: []string{},
	}
}

// IsEmpty reports whether no check fired.
func (b EntityBag) IsEmpty() bool {
	return len(b.Metrics) == 0 && len(b.Dimensions) == 0 &&
		len(b.Comparisons) == 0 && len(b.DataSources) == 0
}

// SQLQuery is a named probe query attached to a plan.
type SQLQuery struct {
	Name string `json:"name"`
	SQL  string `json:"sql"`
}

// TestPlan is the structured output of deconstruction. Build it with
// NewTestPlan. Fields stay exported for the wire format, so immutability is a
// convention: code must not modify a plan once built, and anything that hands
// a plan beyond the call that produced it passes a Clone.
type TestPlan struct {
	Hypothesis          string              `json:"hypothesis"`
	RequiredData        []string            `json:"required_data"`
	SQLQueries          []SQLQuery          `json:"sql_queries"`
	StatisticalMethods  []StatisticalMethod `json:"statistical_methods"`
	ExpectedOutcome     string              `json:"expected_outcome"`
	ConfidenceThreshold float64             `json:"confidence_threshold"`
}

// NewTestPlan copies every slice it is handed so later mutation of the inputs
// cannot reach the plan.
func NewTestPlan(hypothesis string, requiredData []string, queries []SQLQuery, methods []StatisticalMethod, expectedOutcome string) *TestPlan {
	return &TestPlan{
		Hypothesis:          hypothesis,
		RequiredData:        append([]string{}, requiredData...),
		SQLQueries:          append([]SQLQuery{}, queries...),
		StatisticalMethods:  append([]StatisticalMethod{}, methods...),
		ExpectedOutcome:     expectedOutcome,
		ConfidenceThreshold: DefaultConfidenceThreshold,
	}
}

// Clone returns a deep copy of the plan.
func (p *TestPlan) Clone() *TestPlan {
	if p == nil {
		return nil
	}
	c := NewTestPlan(p.Hypothesis, p.RequiredData, p.SQLQueries, p.StatisticalMethods, p.ExpectedOutcome)
	c.ConfidenceThreshold = p.ConfidenceThreshold
	return c
}

// MethodTags returns the methods as their wire strings.
func (p *TestPlan) MethodTags() []string {
	tags := make([]string, len(p.StatisticalMethods))
	for i, m := range p.StatisticalMethods {
		tags[i] = m.String()
	}
	return tags
}

// Fingerprint hashes the canonical JSON form of the plan.
func (p *TestPlan) Fingerprint() core.Hash {
	raw, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return core.NewHash(raw)
}

// DeconstructionResponse is the uniform envelope returned for every call.
type DeconstructionResponse struct {
	Success     bool        `json:"success"`
	TestPlan    *TestPlan   `json:"test_plan,omitempty"`
	Message     string      `json:"message"`
	Error       string      `json:"error,omitempty"`
	Confidence  float64     `json:"confidence"`
	PatternType PatternType `json:"pattern_type,omitempty"`
}

// Response messages.
const (
	MessageSuccess       = "Hypothesis successfully deconstructed"
	MessageEmpty         = "Empty hypothesis provided"
	MessageGenerationErr = "Failed to generate test plan"
	MessageInternalErr   = "Internal error during deconstruction"
)
