package transcript

import (
	"strings"

	"debate-archive/pkg/domain"
)

// PositionalDiff compares two texts line by line at matching positions and
// reports every position where they disagree, up to the longer text's line
// count. Line numbers are 1-based and the shorter text reads as empty past
// its end. An insertion or deletion therefore shows up as a run of
// mismatches from that point on rather than a single edit; an LCS-based
// aligner could replace this behind the same contract if edit-script
// fidelity is ever needed.
func PositionalDiff(generated, provided string) []domain.DiffEntry {
	generatedLines := strings.Split(generated, "\n")
	providedLines := strings.Split(provided, "\n")

	count := len(generatedLines)
	if len(providedLines) > count {
		count = len(providedLines)
	}

	entries := make([]domain.DiffEntry, 0)
	for i := 0; i < count; i++ {
		generatedLine := lineAt(generatedLines, i)
		providedLine := lineAt(providedLines, i)
		if generatedLine != providedLine {
			entries = append(entries, domain.DiffEntry{
				Line:      i + 1,
				Generated: generatedLine,
				Provided:  providedLine,
			})
		}
	}

	return entries
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
