package entities

import (
	"bufio"
	"io"
	"strings"
)

const (
	separatorPrefix  = "---"
	versionTagPrefix = "v"
	sourceBullet     = "- "
	targetBullet     = "* "
)

// Changelog holds the lines of the most recent changelog entry, already
// rewritten for markdown rendering.
type Changelog struct {
	Lines []string
}

// Markdown renders the entry as a markdown fragment, one line per bullet.
func (c Changelog) Markdown() string {
	if len(c.Lines) == 0 {
		return ""
	}
	return strings.Join(c.Lines, "\n") + "\n"
}

// ExtractLatestChangelogEntry reads a flat changelog (most recent entry first)
// and returns only the first entry.
//
// Behaviour:
//   - Lines starting with "---" (separators) or "v" (version tags) are dropped.
//   - Every other line is kept; a leading "- " becomes "* ".
//   - Reading stops right after the first blank line found at index > 1,
//     so a blank line at the very top does not end the entry. That blank
//     line is part of the result.
func ExtractLatestChangelogEntry(r io.Reader) (Changelog, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for idx := 0; scanner.Scan(); idx++ {
		line := strings.TrimRight(scanner.Text(), "\r")

		if !strings.HasPrefix(line, separatorPrefix) && !strings.HasPrefix(line, versionTagPrefix) {
			lines = append(lines, rewriteBullet(line))
		}

		if idx > 1 && line == "" {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return Changelog{}, err
	}

	return Changelog{Lines: lines}, nil
}

// rewriteBullet converts a leading "- " list marker, after any indentation, to "* ".
func rewriteBullet(line string) string {
	body := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(body, sourceBullet) {
		return line
	}
	indent := line[:len(line)-len(body)]
	return indent + targetBullet + strings.TrimPrefix(body, sourceBullet)
}
