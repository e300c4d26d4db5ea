package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CommandName is the CLI binary referenced by reproduction instructions.
const CommandName = "fhevm-examples"

// RenderSummary formats the human readable run summary.
func (r *RunReport) RenderSummary(now time.Time) string {
	var b strings.Builder

	b.WriteString("FHEVM Examples Generator - Scaffold Summary\n")
	fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "Generated: %s\n\n", now.UTC().Format(time.RFC3339))

	b.WriteString("RESULTS:\n")
	successful, failed := 0, 0
	for _, ex := range r.Examples {
		mark := "✅"
		if !ex.Success {
			mark = "❌"
			failed++
		} else {
			successful++
		}
		fmt.Fprintf(&b, "  %s %s", mark, ex.Name)
		if !ex.Success && ex.Error != "" {
			fmt.Fprintf(&b, " - %s", ex.Error)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nSTATISTICS:\n")
	fmt.Fprintf(&b, "  Successful: %d\n", successful)
	fmt.Fprintf(&b, "  Failed: %d\n", failed)
	fmt.Fprintf(&b, "  Total: %d\n", len(r.Examples))

	b.WriteString("\nREPRODUCTION COMMANDS:\nTo reproduce locally, run:\n\n")
	fmt.Fprintf(&b, "  %s setup\n", CommandName)
	fmt.Fprintf(&b, "  %s scaffold-all\n\n", CommandName)

	shown := 0
	for _, ex := range r.Examples {
		if ex.Contract == "" || ex.Test == "" {
			continue
		}
		if shown == 0 {
			b.WriteString("Or scaffold individual examples:\n\n")
		}
		fmt.Fprintf(&b, "  %s create %s --contract %s --test %s\n", CommandName, ex.Name, ex.Contract, ex.Test)
		shown++
		if shown == 2 {
			break
		}
	}
	if shown > 0 {
		b.WriteString("\n")
	}

	if len(r.Examples) > 0 {
		ex := r.Examples[0]
		branch := ex.Branch
		if branch == "" {
			branch = "fhevm-example/" + ex.Name
		}
		out := r.OutputDir
		if out == "" {
			out = "scaffolded"
		}
		b.WriteString("PUSHING TO GITHUB:\n")
		fmt.Fprintf(&b, "For each scaffolded example in %s/, navigate to the directory and push:\n\n", filepath.ToSlash(out))
		fmt.Fprintf(&b, "  cd %s\n", filepath.ToSlash(filepath.Join(out, ex.Name)))
		fmt.Fprintf(&b, "  git remote add your-origin git@github.com:YOUR-USERNAME/%s.git\n", ex.Name)
		fmt.Fprintf(&b, "  git push your-origin %s\n\n", branch)
		b.WriteString("Replace YOUR-USERNAME with your actual GitHub username.\n\n")
	}

	b.WriteString("DELIVERABLES:\n")
	b.WriteString("  - deliverables.json: Detailed results for each example\n")
	b.WriteString("  - summary.txt: This file\n")
	fmt.Fprintf(&b, "  - %s/: Directory containing all generated examples\n", filepath.ToSlash(r.OutputDir))

	return b.String()
}

// WriteSummary renders the summary to path.
func (r *RunReport) WriteSummary(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(r.RenderSummary(time.Now())), 0644)
}
