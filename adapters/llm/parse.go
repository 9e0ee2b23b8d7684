package llm

import (
	"fmt"
	"log"
	"strings"

	"github.com/tidwall/gjson"

	"hypoplan/domain/core"
	"hypoplan/domain/plan"
)

// extractJSONObject returns the outermost {...} span of a model answer,
// tolerating prose or code fences around it.
func extractJSONObject(output string) (string, bool) {
	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start < 0 || end <= start {
		return "", false
	}
	candidate := output[start : end+1]
	if !gjson.Valid(candidate) {
		return "", false
	}
	return candidate, true
}

// ParsePlanOutput reads a model answer into a test plan. Unknown method tags
// are dropped; an answer with no usable method is rejected.
func ParsePlanOutput(output string, hypothesis string, defaultOutcome string) (*plan.TestPlan, error) {
	raw, ok := extractJSONObject(output)
	if !ok {
		return nil, core.NewLLMOutputError("no JSON object in response")
	}
	doc := gjson.Parse(raw)

	var requiredData []string
	doc.Get("required_data").ForEach(func(_, value gjson.Result) bool {
		if s := strings.TrimSpace(value.String()); s != "" {
			requiredData = append(requiredData, s)
		}
		return true
	})
	if len(requiredData) == 0 {
		requiredData = plan.DefaultRequiredData()
	}

	queries := []plan.SQLQuery{}
	doc.Get("sql_queries").ForEach(func(_, value gjson.Result) bool {
		sql := strings.TrimSpace(value.Get("sql").String())
		if sql == "" {
			return true
		}
		name := strings.TrimSpace(value.Get("name").String())
		if name == "" {
			name = fmt.Sprintf("ai_generated_query_%d", len(queries)+1)
		}
		queries = append(queries, plan.SQLQuery{Name: name, SQL: sql})
		return true
	})

	var methods []plan.StatisticalMethod
	seen := make(map[plan.StatisticalMethod]bool)
	doc.Get("statistical_methods").ForEach(func(_, value gjson.Result) bool {
		method, err := plan.ParseStatisticalMethod(value.String())
		if err != nil {
			log.Printf("[LLMComposer] Dropping method from model output: %v", err)
			return true
		}
		if !seen[method] {
			seen[method] = true
			methods = append(methods, method)
		}
		return true
	})
	if len(methods) == 0 {
		return nil, core.NewLLMOutputError("no recognised statistical methods")
	}

	outcome := strings.TrimSpace(doc.Get("expected_outcome").String())
	if outcome == "" {
		outcome = defaultOutcome
	}

	return plan.NewTestPlan(hypothesis, requiredData, queries, methods, outcome), nil
}

// CleanSQLOutput strips code fences and surrounding whitespace from a model
// SQL answer.
func CleanSQLOutput(output string) string {
	s := strings.TrimSpace(output)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.Index(s, "\n"); nl >= 0 {
			first := strings.TrimSpace(s[:nl])
			if first == "" || strings.EqualFold(first, "sql") {
				s = s[nl+1:]
			}
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
