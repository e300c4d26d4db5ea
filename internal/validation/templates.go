package validation

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// TemplatePair names a contract template and the test template that documents it.
type TemplatePair struct {
	Name         string `json:"name"`
	ContractPath string `json:"contract_path"`
	TestPath     string `json:"test_path"`
}

// PairReport is the validation outcome for one named pair.
type PairReport struct {
	TemplatePair
	Result PairResult `json:"result"`
}

// Summary totals a batch of pair reports.
type Summary struct {
	Templates int `json:"templates"`
	Valid     int `json:"valid"`
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
}

// DiscoverPairs pairs every contracts/<name>.sol under templatesDir with
// tests/<name>.test.ts. Pairs are sorted by name.
func DiscoverPairs(templatesDir string) ([]TemplatePair, error) {
	matches, err := filepath.Glob(filepath.Join(templatesDir, "contracts", "*.sol"))
	if err != nil {
		return nil, fmt.Errorf("failed to list contract templates: %w", err)
	}
	sort.Strings(matches)

	pairs := make([]TemplatePair, 0, len(matches))
	for _, contract := range matches {
		name := strings.TrimSuffix(filepath.Base(contract), ".sol")
		pairs = append(pairs, TemplatePair{
			Name:         name,
			ContractPath: contract,
			TestPath:     filepath.Join(templatesDir, "tests", name+".test.ts"),
		})
	}
	return pairs, nil
}

// ValidatePairs validates each pair in order.
func ValidatePairs(ctx context.Context, pairs []TemplatePair) ([]PairReport, Summary, error) {
	reports := make([]PairReport, 0, len(pairs))
	var sum Summary

	for _, p := range pairs {
		res, err := ValidateBoth(ctx, p.ContractPath, p.TestPath)
		if err != nil {
			return nil, Summary{}, err
		}
		reports = append(reports, PairReport{TemplatePair: p, Result: res})

		sum.Templates++
		if res.Valid() {
			sum.Valid++
		}
		sum.Errors += len(res.Contract.Errors) + len(res.Test.Errors)
		sum.Warnings += len(res.Contract.Warnings) + len(res.Test.Warnings)
	}

	return reports, sum, nil
}

// ValidateAll discovers and validates every template pair under templatesDir.
func ValidateAll(ctx context.Context, templatesDir string) ([]PairReport, Summary, error) {
	pairs, err := DiscoverPairs(templatesDir)
	if err != nil {
		return nil, Summary{}, err
	}
	return ValidatePairs(ctx, pairs)
}
