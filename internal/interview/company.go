package interview

import "strings"

// companyPatterns maps well-known interview styles to the patterns those
// companies famously emphasize. Unknown companies get a generic mix.
var companyPatterns = map[string][]string{
	"google":    {"graphs", "dynamic programming", "recursion", "system design thinking"},
	"meta":      {"arrays", "strings", "graphs", "behavioral coding"},
	"amazon":    {"trees", "BFS/DFS", "OOP design", "leadership principles"},
	"apple":     {"arrays", "linked lists", "design"},
	"microsoft": {"trees", "dynamic programming", "arrays"},
	"netflix":   {"system design", "algorithms", "concurrency"},
	"stripe":    {"strings", "parsing", "API design", "edge cases"},
}

var genericPatterns = []string{"arrays", "strings", "trees", "dynamic programming"}

// PatternsForCompany resolves a company-style request to its pattern mix.
func PatternsForCompany(company string) []string {
	if patterns, ok := companyPatterns[strings.ToLower(strings.TrimSpace(company))]; ok {
		return patterns
	}
	return genericPatterns
}
