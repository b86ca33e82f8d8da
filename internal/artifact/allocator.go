package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxAllocAttempts bounds the reservation retry loop. Contention on a
// local filesystem is rare; five re-reads of the directory is already
// generous.
const maxAllocAttempts = 5

// AllocateParams describes one allocation request.
type AllocateParams struct {
	Kind   Kind
	Root   string // directory the artifact will live in
	Prefix string // literal prefix preceding the number ("spec-", "AUTH-T", "")
	Width  int    // zero-padding width; 0 means DefaultWidth
	Suffix string // appended after the number in the reserved name ("-slug", ".md")

	// Explicit, when positive, requests that exact number. Zero means
	// automatic next-after-max allocation.
	Explicit int
}

// Reservation is a successfully claimed slot: the placeholder already
// exists on disk, so no concurrent invocation can claim the same number.
// The caller fills in content afterwards; a process killed before doing
// so leaves a complete, empty reservation — never a half-claimed number.
type Reservation struct {
	ID   ID
	Name string // reserved filename or directory name
	Path string // full path of the reservation
}

// Allocate claims the next unused number under root, or the explicit one
// when requested. The claim itself is an exclusive create — never a
// check-then-write — which is what makes two racing invocations safe:
// whichever loses the create re-reads the directory and takes the next
// number instead.
func Allocate(p AllocateParams) (*Reservation, error) {
	if p.Width <= 0 {
		p.Width = DefaultWidth
	}

	if p.Explicit != 0 {
		return allocateExplicit(p)
	}
	return allocateNext(p)
}

func allocateExplicit(p AllocateParams) (*Reservation, error) {
	if p.Explicit < 0 {
		return nil, &InvalidNumberError{Number: p.Explicit}
	}

	if entry, taken := numberTaken(p.Root, p.Prefix, p.Explicit); taken {
		return nil, &CollisionError{
			Number: p.Explicit,
			Path:   filepath.Join(p.Root, entry.Name),
		}
	}

	res, err := reserve(p, p.Explicit)
	if err == nil {
		return res, nil
	}
	if errors.Is(err, fs.ErrExist) {
		// A concurrent invocation claimed it between the scan and the
		// create. The caller was explicit, so fail rather than pick a
		// different number.
		return nil, &CollisionError{
			Number: p.Explicit,
			Path:   filepath.Join(p.Root, reservedName(p, p.Explicit)),
		}
	}
	return nil, err
}

func allocateNext(p AllocateParams) (*Reservation, error) {
	for attempt := 0; attempt < maxAllocAttempts; attempt++ {
		next := 1
		if latest, ok, _ := Latest(p.Root, p.Prefix); ok {
			// Next-after-max, never backfill: with 001 and 003 on disk
			// the next allocation is 004. Reusing a deleted number would
			// resurrect stale references to it.
			next = latest.Number + 1
		}

		res, err := reserve(p, next)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, fs.ErrExist) {
			continue // lost the race; re-read and try the new max
		}
		return nil, err
	}

	return nil, &ContentionError{Root: p.Root, Prefix: p.Prefix, Attempts: maxAllocAttempts}
}

// numberTaken reports whether number is already in use, and by which entry.
func numberTaken(root, prefix string, number int) (Entry, bool) {
	for _, e := range Scan(root, prefix) {
		if e.Number == number {
			return e, true
		}
	}
	return Entry{}, false
}

func reservedName(p AllocateParams, number int) string {
	return Format(p.Prefix, number, p.Width) + p.Suffix
}

// reserve claims the slot with an atomic create-if-absent. Directories
// use os.Mkdir, files use O_CREATE|O_EXCL; both fail with fs.ErrExist
// when someone else got there first.
func reserve(p AllocateParams, number int) (*Reservation, error) {
	if err := os.MkdirAll(p.Root, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact root %s: %w", p.Root, err)
	}

	name := reservedName(p, number)
	path := filepath.Join(p.Root, name)

	if p.Kind.IsDir() {
		if err := os.Mkdir(path, 0o755); err != nil {
			return nil, fmt.Errorf("reserving %s: %w", path, err)
		}
	} else {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("reserving %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("closing reservation %s: %w", path, err)
		}
	}

	return &Reservation{
		ID:   ID{Kind: p.Kind, Prefix: p.Prefix, Number: number, Width: p.Width},
		Name: name,
		Path: path,
	}, nil
}

// SanitizeName converts a human-supplied feature name into a slug safe
// for directory names and git branches: lowercase, any run of characters
// outside [a-z0-9-] becomes a single hyphen, repeats collapse, and
// leading/trailing hyphens are trimmed.
// Example: "Hello, World!! 2024" becomes "hello-world-2024".
func SanitizeName(raw string) (string, error) {
	lowered := strings.ToLower(raw)

	var b strings.Builder
	prevHyphen := false
	for _, r := range lowered {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "", &InvalidNameError{Input: raw}
	}
	return slug, nil
}
