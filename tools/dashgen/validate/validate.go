// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/osrs-price-tracker/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings are
// reported only.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Expr parses one PromQL expression and checks its metric names against
// known. Raw metrics selected without a job matcher produce a warning when
// scoped is set.
func Expr(expr string, known map[string]bool, scoped bool) Result {
	var r Result

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("parsing %q: %v", expr, err))
		return r
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !known[vs.Name] {
			r.Errors = append(r.Errors, fmt.Sprintf("unknown metric %q in %q", vs.Name, expr))
		}
		if scoped && !strings.Contains(vs.Name, ":") && !hasLabel(vs, "job") {
			r.Warnings = append(r.Warnings, fmt.Sprintf("metric %q has no job matcher in %q", vs.Name, expr))
		}
		return nil
	})

	return r
}

func hasLabel(vs *parser.VectorSelector, name string) bool {
	for _, m := range vs.LabelMatchers {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Dashboard validates every query expression in dash. Dashboard queries are
// expected to scope raw metrics to the scrape job.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	data, err := json.Marshal(dash)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("encoding dashboard: %v", err))
		return r
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return r
	}

	exprs := collectExprs(doc, nil)
	if len(exprs) == 0 {
		r.Warnings = append(r.Warnings, "dashboard has no queries")
	}
	for _, e := range exprs {
		r.merge(Expr(e, known, true))
	}
	return r
}

// Rules validates every rule expression in pr and checks that record names
// are unique. Rule expressions aggregate across jobs, so they are not
// required to carry a job matcher.
func Rules(pr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	seen := make(map[string]bool)

	for _, g := range pr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Name()
			if name == "" {
				r.Errors = append(r.Errors, fmt.Sprintf("group %s: rule without record or alert name", g.Name))
			}
			if seen[name] {
				r.Errors = append(r.Errors, fmt.Sprintf("group %s: duplicate rule %s", g.Name, name))
			}
			seen[name] = true
			r.merge(Expr(rule.Expr, known, false))
		}
	}
	return r
}

// collectExprs walks decoded JSON and returns every string under an "expr"
// key, sorted for stable output.
func collectExprs(v any, out []string) []string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := t[k].(string); ok && k == "expr" {
				out = append(out, s)
				continue
			}
			out = collectExprs(t[k], out)
		}
	case []any:
		for _, e := range t {
			out = collectExprs(e, out)
		}
	}
	return out
}
