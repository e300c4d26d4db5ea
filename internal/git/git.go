package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// BranchPrefix is prepended to the example name for the scaffolded repo's branch.
const BranchPrefix = "fhevm-example/"

type ChangedFile struct {
	Path         string
	ChangedLines []int
}

func run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("git %s failed: %w", args[0], err)
		}
		return nil, fmt.Errorf("git %s failed: %w: %s", args[0], err, msg)
	}
	return out, nil
}

// IsRepo reports whether dir is inside a usable git work tree.
func IsRepo(ctx context.Context, dir string) bool {
	_, err := run(ctx, dir, "status", "--porcelain")
	return err == nil
}

// Clone clones url into dir.
func Clone(ctx context.Context, url, dir string) error {
	_, err := run(ctx, "", "clone", url, dir)
	return err
}

// InitExample turns dir into a fresh repository on the example's branch and
// commits its current contents.
func InitExample(ctx context.Context, dir, name string) error {
	branch := BranchPrefix + name
	steps := [][]string{
		{"init", "-b", branch},
		{"add", "-A"},
		{"-c", "user.name=fhevm-examples", "-c", "user.email=fhevm-examples@localhost",
			"commit", "--no-gpg-sign", "-m", fmt.Sprintf("Initial commit: %s example", name)},
	}
	for _, args := range steps {
		if _, err := run(ctx, dir, args...); err != nil {
			return err
		}
	}
	return nil
}

// CurrentBranch returns the checked out branch of dir.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// TopLevel returns the root of the work tree containing dir.
func TopLevel(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return filepath.FromSlash(strings.TrimSpace(string(out))), nil
}

// GetChangedFiles runs git diff in dir and returns a list of changed files with line numbers.
func GetChangedFiles(ctx context.Context, dir, baseRef string) ([]ChangedFile, error) {
	output, err := run(ctx, dir, "diff", "-U0", baseRef)
	if err != nil {
		return nil, err
	}

	return parseDiff(output)
}

// ChangedPaths is GetChangedFiles reduced to a set of absolute paths. Diff paths
// are relative to the work tree root, not to dir.
func ChangedPaths(ctx context.Context, dir, baseRef string) (map[string]bool, error) {
	root, err := TopLevel(ctx, dir)
	if err != nil {
		return nil, err
	}
	files, err := GetChangedFiles(ctx, dir, baseRef)
	if err != nil {
		return nil, err
	}
	paths := make(map[string]bool, len(files))
	for _, f := range files {
		paths[filepath.Join(root, filepath.FromSlash(f.Path))] = true
	}
	return paths, nil
}

// Regex for chunk header: @@ -oldStart,oldLen +newStart,newLen @@
// Only the + side matters.
var chunkHeader = regexp.MustCompile(`^@@ \-\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

func parseDiff(output []byte) ([]ChangedFile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var changes []ChangedFile
	var currentFile *ChangedFile

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "diff --git") {
			parts := strings.Fields(line)
			if len(parts) >= 4 {
				// a/path b/path; keep the new side
				path := strings.TrimPrefix(parts[3], "b/")

				if currentFile != nil {
					changes = append(changes, *currentFile)
				}
				currentFile = &ChangedFile{Path: path, ChangedLines: []int{}}
			}
			continue
		}

		if currentFile == nil {
			continue
		}

		if strings.HasPrefix(line, "@@") {
			matches := chunkHeader.FindStringSubmatch(line)
			if len(matches) > 1 {
				startLine, _ := strconv.Atoi(matches[1])
				count := 1 // omitted length means one line
				if len(matches) > 2 && matches[2] != "" {
					count, _ = strconv.Atoi(matches[2])
				}

				// count 0 is a pure deletion; the file still counts as changed
				for i := 0; i < count; i++ {
					currentFile.ChangedLines = append(currentFile.ChangedLines, startLine+i)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read diff: %w", err)
	}

	if currentFile != nil {
		changes = append(changes, *currentFile)
	}

	return changes, nil
}
