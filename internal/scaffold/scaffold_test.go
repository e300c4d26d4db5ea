package scaffold

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/azrim/fhevm-examples-generator/internal/generator"
	"github.com/azrim/fhevm-examples-generator/internal/report"
	"github.com/azrim/fhevm-examples-generator/internal/toolchain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractTemplate = `// SPDX-License-Identifier: BSD-3-Clause-Clear
pragma solidity ^0.8.24;

import {FHE, euint32} from "@fhevm/solidity/lib/FHE.sol";
import {ZamaEthereumConfig} from "@fhevm/solidity/config/ZamaConfig.sol";

contract Counter is ZamaEthereumConfig {
    euint32 private _count;
    function reset() external { _count = FHE.asEuint32(0); }
}
`

const testTemplate = `import { expect } from "chai";
import { ethers } from "hardhat";

/**
 * @title Encrypted Counter
 * @purpose Shows an encrypted counter
 * @chapter Basics
 * @example Deploy the counter
 */
describe("Counter", function () {
  it("deploys", async function () {
    expect(await ethers.getSigners()).to.not.be.empty;
  });
});
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

type fixture struct {
	base     string
	contract string
	test     string
	out      string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		base:     filepath.Join(root, "base-template"),
		contract: filepath.Join(root, "templates", "contracts", "basic-counter.sol"),
		test:     filepath.Join(root, "templates", "tests", "basic-counter.test.ts"),
		out:      filepath.Join(root, "scaffolded"),
	}
	writeFile(t, filepath.Join(f.base, "package.json"), `{"name":"fhevm-hardhat-template"}`)
	writeFile(t, filepath.Join(f.base, "hardhat.config.ts"), "export default {};\n")
	writeFile(t, filepath.Join(f.base, "contracts", "FHECounter.sol"), "contract FHECounter {}\n")
	writeFile(t, filepath.Join(f.base, "contracts", "notes.md"), "keep me\n")
	writeFile(t, filepath.Join(f.base, "test", "FHECounter.ts"), "describe()\n")
	writeFile(t, filepath.Join(f.base, ".git", "HEAD"), "ref: refs/heads/main\n")
	writeFile(t, filepath.Join(f.base, "node_modules", "x", "index.js"), "")
	writeFile(t, filepath.Join(f.base, ".DS_Store"), "")
	writeFile(t, f.contract, contractTemplate)
	writeFile(t, f.test, testTemplate)
	return f
}

func (f fixture) options() Options {
	return Options{
		Name:             "basic-counter",
		Category:         "getting-started",
		ContractTemplate: f.contract,
		TestTemplate:     f.test,
		OutDir:           f.out,
		BaseTemplateDir:  f.base,
	}
}

func newScaffolder(t *testing.T, tc *toolchain.Toolchain) *Scaffolder {
	t.Helper()
	gen, err := generator.NewReadmeGenerator(nil)
	require.NoError(t, err)
	return New(gen, tc, nil)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	rep := report.NewRunReport("create", f.out)

	res, err := newScaffolder(t, nil).Create(context.Background(), f.options(), rep)
	require.NoError(t, err)

	dir := filepath.Join(f.out, "basic-counter")
	assert.Equal(t, dir, res.OutputDir)
	assert.Equal(t, filepath.Join(dir, "README.md"), res.ReadmePath)
	assert.Equal(t, []string{
		filepath.Join("contracts", "basic-counter.sol"),
		filepath.Join("test", "basic-counter.test.ts"),
		"README.md",
	}, res.Files)
	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.Branch)

	assert.FileExists(t, filepath.Join(dir, "package.json"))
	assert.FileExists(t, filepath.Join(dir, "contracts", "notes.md"))
	assert.NoFileExists(t, filepath.Join(dir, "contracts", "FHECounter.sol"))
	assert.NoFileExists(t, filepath.Join(dir, "test", "FHECounter.ts"))
	assert.NoDirExists(t, filepath.Join(dir, ".git"))
	assert.NoDirExists(t, filepath.Join(dir, "node_modules"))
	assert.NoFileExists(t, filepath.Join(dir, ".DS_Store"))

	readme, err := os.ReadFile(res.ReadmePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(readme), "# Encrypted Counter\n"))
	assert.Contains(t, string(readme), "### Deploy the counter")

	names := make([]string, 0, len(rep.Stages))
	for _, st := range rep.Stages {
		names = append(names, st.Name)
		assert.Equal(t, report.StatusOK, st.Status, st.Name)
	}
	assert.Equal(t, []string{"validate", "copy_base", "install_templates", "generate_docs"}, names)
}

func TestCreate_ReplacesExistingOutput(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.out, "basic-counter", "stale.txt"), "old")

	_, err := newScaffolder(t, nil).Create(context.Background(), f.options(), nil)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(f.out, "basic-counter", "stale.txt"))
}

func TestCreate_InvalidTemplate(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.contract, "contract Broken {}")
	rep := report.NewRunReport("create", f.out)

	res, err := newScaffolder(t, nil).Create(context.Background(), f.options(), rep)
	require.ErrorIs(t, err, ErrTemplateInvalid)
	assert.Contains(t, err.Error(), "Missing pragma solidity statement")
	assert.False(t, res.Validation.Valid())
	assert.NoDirExists(t, filepath.Join(f.out, "basic-counter"))

	require.Len(t, rep.Signals, 1)
	assert.Equal(t, "template_invalid", rep.Signals[0].Code)
}

func TestCreate_WarningsCarried(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.test, strings.Replace(testTemplate, " * @chapter Basics\n", "", 1))

	res, err := newScaffolder(t, nil).Create(context.Background(), f.options(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Missing @chapter JSDoc tag"}, res.Warnings)
}

func TestCreate_MissingBaseTemplate(t *testing.T) {
	f := newFixture(t)
	opts := f.options()
	opts.BaseTemplateDir = filepath.Join(t.TempDir(), "absent")

	_, err := newScaffolder(t, nil).Create(context.Background(), opts, nil)
	assert.ErrorIs(t, err, ErrBaseTemplateMissing)
}

func TestCreate_BadOptions(t *testing.T) {
	f := newFixture(t)
	s := newScaffolder(t, nil)

	for name, mutate := range map[string]func(*Options){
		"no name":       func(o *Options) { o.Name = "" },
		"path name":     func(o *Options) { o.Name = "../escape" },
		"no template":   func(o *Options) { o.TestTemplate = "" },
		"no output dir": func(o *Options) { o.OutDir = "" },
	} {
		t.Run(name, func(t *testing.T) {
			opts := f.options()
			mutate(&opts)
			res, err := s.Create(context.Background(), opts, nil)
			assert.Error(t, err)
			assert.Nil(t, res)
		})
	}
}

type stubRunner struct {
	calls int
	err   error
}

func (r *stubRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	r.calls++
	return r.err
}

func TestCreate_Toolchain(t *testing.T) {
	f := newFixture(t)
	opts := f.options()
	opts.RunToolchain = true

	ok := &stubRunner{}
	res, err := newScaffolder(t, toolchain.New(ok, 0, nil)).Create(context.Background(), opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, ok.calls)
	assert.Len(t, res.Toolchain, 3)

	failing := &stubRunner{err: errors.New("exit status 1")}
	_, err = newScaffolder(t, toolchain.New(failing, 0, nil)).Create(context.Background(), opts, nil)
	assert.ErrorContains(t, err, "toolchain step install failed")
}

func TestCreate_InitGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	f := newFixture(t)
	opts := f.options()
	opts.InitGit = true

	res, err := newScaffolder(t, nil).Create(context.Background(), opts, nil)
	require.NoError(t, err)
	assert.Equal(t, "fhevm-example/basic-counter", res.Branch)
	assert.DirExists(t, filepath.Join(res.OutputDir, ".git"))
}

func TestExampleResult(t *testing.T) {
	f := newFixture(t)
	opts := f.options()

	out := ExampleResult(opts, &Result{OutputDir: "x", Warnings: []string{"w"}}, nil, 0)
	assert.True(t, out.Success)
	assert.Equal(t, "x", out.OutputDir)
	assert.Equal(t, f.contract, out.Contract)

	out = ExampleResult(opts, nil, ErrTemplateInvalid, 0)
	assert.False(t, out.Success)
	assert.Equal(t, ErrTemplateInvalid.Error(), out.Error)
}
