// Package validation checks FHEVM example templates against the structural
// policy every contract/test pair must follow. Findings are reported in
// ValidationResult, never as Go errors.
package validation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Severity separates policy violations from advisories.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// ValidationResult is the outcome of checking one template.
// Valid is true iff Errors is empty; warnings never affect it.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// PairResult reports a contract and its test template side by side.
type PairResult struct {
	Contract ValidationResult `json:"contract"`
	Test     ValidationResult `json:"test"`
}

// Valid reports whether both templates passed.
func (p PairResult) Valid() bool {
	return p.Contract.Valid && p.Test.Valid
}

// rule is a single substring check.
type rule struct {
	marker   string
	severity Severity
	message  string
}

var contractRules = []rule{
	{"@fhevm/solidity", SeverityError, "Missing @fhevm/solidity import"},
	{"ZamaEthereumConfig", SeverityWarning, "Contract should extend ZamaEthereumConfig"},
	{"SPDX-License-Identifier", SeverityWarning, "Missing SPDX license identifier"},
	{"pragma solidity", SeverityError, "Missing pragma solidity statement"},
	{"FHE.", SeverityWarning, "No FHE operations found in contract"},
}

var testRules = []rule{
	{"ethers", SeverityError, "Missing ethers import"},
	{"expect", SeverityError, "Missing chai expect import"},
	{"@title", SeverityWarning, "Missing @title JSDoc tag"},
	{"@purpose", SeverityWarning, "Missing @purpose JSDoc tag"},
	{"@chapter", SeverityWarning, "Missing @chapter JSDoc tag"},
	{"@example", SeverityWarning, "Missing @example JSDoc tag"},
	{"describe(", SeverityError, "Missing describe block"},
	{"it(", SeverityError, "Missing test cases (it blocks)"},
}

func apply(rules []rule, content string) ValidationResult {
	errs := []string{}
	warnings := []string{}
	for _, r := range rules {
		if strings.Contains(content, r.marker) {
			continue
		}
		if r.severity == SeverityError {
			errs = append(errs, r.message)
		} else {
			warnings = append(warnings, r.message)
		}
	}
	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// ValidateContract checks the text of a Solidity contract template.
func ValidateContract(content string) ValidationResult {
	return apply(contractRules, content)
}

// ValidateTest checks the text of a Hardhat test template.
func ValidateTest(content string) ValidationResult {
	return apply(testRules, content)
}

// ValidateContractFile reads and checks a contract template. A missing file
// is the only error reported; no other checks run.
func ValidateContractFile(path string) ValidationResult {
	content, res, ok := readTemplate(path, "Contract")
	if !ok {
		return res
	}
	return ValidateContract(content)
}

// ValidateTestFile reads and checks a test template, short-circuiting like ValidateContractFile.
func ValidateTestFile(path string) ValidationResult {
	content, res, ok := readTemplate(path, "Test")
	if !ok {
		return res
	}
	return ValidateTest(content)
}

func readTemplate(path, kind string) (string, ValidationResult, bool) {
	b, err := os.ReadFile(path)
	if err == nil {
		return string(b), ValidationResult{}, true
	}

	msg := fmt.Sprintf("Could not read %s template %s: %v", strings.ToLower(kind), path, err)
	if errors.Is(err, fs.ErrNotExist) {
		msg = fmt.Sprintf("%s template not found: %s", kind, path)
	}
	return "", ValidationResult{
		Valid:    false,
		Errors:   []string{msg},
		Warnings: []string{},
	}, false
}

// ValidateBoth checks a contract and its test template concurrently and
// returns both results unmodified.
func ValidateBoth(ctx context.Context, contractPath, testPath string) (PairResult, error) {
	var out PairResult
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out.Contract = ValidateContractFile(contractPath)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out.Test = ValidateTestFile(testPath)
		return nil
	})

	if err := g.Wait(); err != nil {
		return PairResult{}, err
	}
	return out, nil
}
