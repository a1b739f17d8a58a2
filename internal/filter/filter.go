package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// KeepPatterns mark print lines that must survive cleaning: errors,
// warnings, death and game-over events, and engine error/warning calls.
// They are matched case-insensitively anywhere in the line.
var KeepPatterns = []string{
	`print.*\[ERROR\]`,
	`print.*\[WARNING\]`,
	`print.*DIED`,
	`print.*GAME OVER`,
	`print.*💀`,
	`push_error`,
	`push_warning`,
}

// RemovePatterns describe typical debug prints (banner boxes, array dumps).
// They are hints for reporting only; a print line is removed whenever no
// keep pattern matches, whether or not it matches one of these.
var RemovePatterns = []string{
	`^\s*print\(".*╔.*"\)`,
	`^\s*print\(".*║.*"\)`,
	`^\s*print\(".*╚.*"\)`,
	`^\s*print\(".*═.*"\)`,
	`^\s*print\(".*━.*"\)`,
	`^\s*print\(\[.*\].*\)`,
}

// printTokens identify a line as a print invocation.
var printTokens = []string{`print(`, `print"`}

// Classifier decides whether a source line survives cleaning.
type Classifier interface {
	Keep(line string) bool
}

// PatternClassifier keeps non-print lines and print lines matching a keep
// pattern. Hint patterns never affect the decision.
type PatternClassifier struct {
	keep  []*regexp.Regexp
	hints []*regexp.Regexp
}

// New compiles keep patterns (case-insensitive) and hint patterns.
func New(keep, hints []string) (*PatternClassifier, error) {
	c := &PatternClassifier{}
	for _, p := range keep {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("invalid keep pattern %q: %w", p, err)
		}
		c.keep = append(c.keep, re)
	}
	for _, p := range hints {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid remove pattern %q: %w", p, err)
		}
		c.hints = append(c.hints, re)
	}
	return c, nil
}

// Default returns a classifier built from KeepPatterns and RemovePatterns.
func Default() *PatternClassifier {
	c, err := New(KeepPatterns, RemovePatterns)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultClassifier = Default()

// ShouldKeepLine reports whether line survives cleaning under the default patterns.
func ShouldKeepLine(line string) bool {
	return defaultClassifier.Keep(line)
}

func (c *PatternClassifier) Keep(line string) bool {
	if !isPrint(line) {
		return true
	}
	for _, re := range c.keep {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Hint returns the first remove pattern matching line, if any.
func (c *PatternClassifier) Hint(line string) (string, bool) {
	for _, re := range c.hints {
		if re.MatchString(line) {
			return re.String(), true
		}
	}
	return "", false
}

func isPrint(line string) bool {
	for _, tok := range printTokens {
		if strings.Contains(line, tok) {
			return true
		}
	}
	return false
}

// SplitLines splits data into lines, keeping each terminator attached to its
// line. "\n", "\r\n" and a lone "\r" all end a line. A trailing segment
// without a terminator is returned as is.
func SplitLines(data string) []string {
	if data == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			lines = append(lines, data[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			lines = append(lines, data[start:i+1])
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}

// FilterLines partitions lines into kept and removed, preserving order.
func FilterLines(c Classifier, lines []string) (kept, removed []string) {
	kept = make([]string, 0, len(lines))
	for _, line := range lines {
		if c.Keep(line) {
			kept = append(kept, line)
		} else {
			removed = append(removed, line)
		}
	}
	return kept, removed
}
