package gamify

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/pacer/internal/course"
)

// maxGapSpan bounds the sequence range inspected per section, so a file
// named like a date does not produce millions of missing numbers.
const maxGapSpan = 1000

// Gap is a run of missing sequence numbers in one section.
type Gap struct {
	Section string `json:"section,omitempty"`
	First   int    `json:"first"`
	Last    int    `json:"last"`
	Found   []int  `json:"found"`
	Missing []int  `json:"missing"`
}

// Expected describes the inspected sequence range.
func (g Gap) Expected() string {
	return fmt.Sprintf("Sequences %d-%d", g.First, g.Last)
}

// DetectGaps looks for missing numbers among the leading digits of file
// names, per section. Sections with fewer than two numbered files are
// skipped. Gaps are reported in order of each section's first video.
func DetectGaps(c *course.Course) []Gap {
	var order []string
	bySection := make(map[string][]int)
	seen := make(map[string]bool)
	for _, v := range c.Ordered() {
		if !seen[v.Section] {
			seen[v.Section] = true
			order = append(order, v.Section)
		}
		if n, ok := leadingNumber(v.FileName); ok {
			bySection[v.Section] = append(bySection[v.Section], n)
		}
	}

	var gaps []Gap
	for _, section := range order {
		nums := bySection[section]
		if len(nums) < 2 {
			continue
		}
		sort.Ints(nums)
		first, last := nums[0], nums[len(nums)-1]
		if last-first > maxGapSpan {
			continue
		}

		present := make(map[int]bool, len(nums))
		for _, n := range nums {
			present[n] = true
		}
		g := Gap{Section: section, First: first, Last: last}
		for i := first; i <= last; i++ {
			if present[i] {
				g.Found = append(g.Found, i)
			} else {
				g.Missing = append(g.Missing, i)
			}
		}
		if len(g.Missing) > 0 {
			gaps = append(gaps, g)
		}
	}
	return gaps
}

// FormatGapWarning renders gaps as a multi-line warning, or "" for none.
func FormatGapWarning(gaps []Gap) string {
	if len(gaps) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("⚠️  Gap Detection Warning:\n")
	for _, g := range gaps {
		where := ""
		if g.Section != "" {
			where = fmt.Sprintf(" in %q", g.Section)
		}
		fmt.Fprintf(&b, "  • Missing sequences: %s%s\n", joinInts(g.Missing), where)
		fmt.Fprintf(&b, "    Expected: %s\n", g.Expected())
		fmt.Fprintf(&b, "    Found: %s\n", joinInts(g.Found))
	}
	b.WriteString("\n  Tip: Check if files were renamed or moved. Consider re-scanning.")
	return b.String()
}

func leadingNumber(name string) (int, bool) {
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(name[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
