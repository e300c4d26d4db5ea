package generator

import (
	"fmt"
	"strings"
)

var resourceLinks = []struct {
	Label string
	URL   string
}{
	{"FHEVM Documentation", "https://docs.zama.ai/fhevm"},
	{"Hardhat Template", "https://github.com/zama-ai/fhevm-hardhat-template"},
	{"Zama Bounty Program", "https://www.zama.org/post/bounty-track-december-2025-build-the-fhevm-example-hub"},
}

var genericTeachings = []string{
	"Core FHEVM functionality",
	"Smart contract development with encrypted data",
	"Testing patterns for FHE operations",
}

// RenderReadme serialises the document model into the example README.
// The output depends only on its inputs.
func RenderReadme(docs *ParsedDocs, exampleName string) string {
	if docs == nil {
		docs = NewParsedDocs()
	}

	var sb strings.Builder

	title := docs.Title
	if title == "" {
		title = exampleName + " Example"
	}
	sb.WriteString("# " + title + "\n\n")

	if docs.Purpose != "" {
		sb.WriteString(docs.Purpose + "\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("This example demonstrates the %s functionality in FHEVM.\n\n", exampleName))
	}

	for _, ch := range docs.Chapters {
		sb.WriteString("## " + ch.Name + "\n\n")
		for _, ex := range ch.Examples {
			sb.WriteString("### " + ex + "\n\n")
		}
		for _, note := range ch.Notes {
			sb.WriteString("> **Note:** " + note + "\n\n")
		}
	}

	if len(docs.GeneralNotes) > 0 {
		sb.WriteString("## Notes\n\n")
		for _, note := range docs.GeneralNotes {
			sb.WriteString("> " + note + "\n\n")
		}
	}

	writeHowToRun(&sb)
	writeTeaches(&sb, docs)
	writeResources(&sb)

	return sb.String()
}

func writeHowToRun(sb *strings.Builder) {
	sb.WriteString("## How to Run Tests\n\n")
	sb.WriteString("```bash\n")
	sb.WriteString("# Install dependencies\n")
	sb.WriteString("npm ci\n\n")
	sb.WriteString("# Run tests\n")
	sb.WriteString("npm test\n\n")
	sb.WriteString("# Or compile only\n")
	sb.WriteString("npx hardhat compile\n")
	sb.WriteString("```\n\n")
}

func writeTeaches(sb *strings.Builder, docs *ParsedDocs) {
	sb.WriteString("## What This Example Teaches\n\n")
	if docs.Purpose != "" {
		sb.WriteString(docs.Purpose + "\n\n")
	}

	sb.WriteString("This example demonstrates:\n\n")
	if len(docs.Chapters) == 0 {
		for _, line := range genericTeachings {
			sb.WriteString("- " + line + "\n")
		}
	}
	for _, ch := range docs.Chapters {
		sb.WriteString("- **" + ch.Name + "**: ")
		if len(ch.Examples) > 0 {
			sb.WriteString(strings.Join(ch.Examples, ", "))
		} else {
			sb.WriteString("Core concepts and implementation")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeResources(sb *strings.Builder) {
	sb.WriteString("## Additional Resources\n\n")
	for _, link := range resourceLinks {
		sb.WriteString(fmt.Sprintf("- [%s](%s)\n", link.Label, link.URL))
	}
}
