package artifact

import (
	"os"
	"regexp"
	"sort"
	"strconv"
)

// Entry is one numbered child of a root directory.
type Entry struct {
	Name   string // filename or directory name as found on disk
	Number int
}

// AmbiguousLatestWarning reports two or more siblings tied at the same
// highest number. Correct allocation never produces this, but manual
// filesystem edits can; it is surfaced, never silently resolved.
type AmbiguousLatestWarning struct {
	Number int
	Names  []string // lexicographic order; the last is the preferred entry
}

func (w *AmbiguousLatestWarning) String() string {
	return "multiple artifacts share number " + strconv.Itoa(w.Number) + ": " +
		joinNames(w.Names)
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// Scan lists the immediate children of root whose names start with the
// exact (case-sensitive) prefix followed by a digit run, and returns one
// entry per match sorted by number, then name. Anything else — a README,
// a decomposition/ subfolder, an unrelated dotfile — is silently ignored.
// Subdirectories are never descended into.
//
// A missing or unreadable root is an empty result, not an error: the
// very first artifact of a brand-new feature legitimately has no root yet.
func Scan(root, prefix string) []Entry {
	children, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	// Width is a formatting concern only: a legacy spec-1042.md parses
	// as 1042, it is not rejected for being wider than three digits.
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(\d+)`)

	var entries []Entry
	for _, child := range children {
		m := re.FindStringSubmatch(child.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue // digit run too long to be a real artifact number
		}
		entries = append(entries, Entry{Name: child.Name(), Number: n})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Number != entries[j].Number {
			return entries[i].Number < entries[j].Number
		}
		return entries[i].Name < entries[j].Name
	})

	return entries
}

// ListNumbers returns the set of numbers currently in use under root
// for the given prefix.
func ListNumbers(root, prefix string) map[int]struct{} {
	entries := Scan(root, prefix)
	numbers := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		numbers[e.Number] = struct{}{}
	}
	return numbers
}

// Latest returns the entry with the highest number, or ok=false when the
// root holds no artifacts of this prefix. When several entries tie at the
// highest number the lexicographically last name wins and the ambiguity
// is reported through the returned warning.
func Latest(root, prefix string) (latest Entry, ok bool, warn *AmbiguousLatestWarning) {
	entries := Scan(root, prefix)
	if len(entries) == 0 {
		return Entry{}, false, nil
	}

	// Entries are sorted by number then name, so the tail of the slice
	// holds every candidate at the max number in lexicographic order.
	max := entries[len(entries)-1].Number
	var tied []string
	for _, e := range entries {
		if e.Number == max {
			tied = append(tied, e.Name)
		}
	}

	latest = entries[len(entries)-1]
	ok = true
	if len(tied) > 1 {
		warn = &AmbiguousLatestWarning{Number: max, Names: tied}
	}
	return latest, ok, warn
}
