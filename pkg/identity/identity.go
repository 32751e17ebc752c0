// Package identity implements the tag/version/identifier/citation
// primitives that every other Nebula package builds on.
package identity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Tag is an opaque, high-entropy identifier. Equality is structural.
type Tag string

// NewTag generates a fresh high-entropy tag.
func NewTag() Tag {
	return Tag(strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")))
}

// String returns the canonical printable form of the tag.
func (t Tag) String() string {
	return string(t)
}

// Version is a dotted sequence of positive integers, e.g. v5.7.1.
type Version []int

// ParseVersion parses a canonical "v<n>(.<n>)*" string.
func ParseVersion(s string) (Version, error) {
	if !strings.HasPrefix(s, "v") {
		return nil, fmt.Errorf("invalid version %q: missing leading v", s)
	}
	parts := strings.Split(s[1:], ".")
	v := make(Version, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid version %q: component %q is not a positive integer", s, p)
		}
		v = append(v, n)
	}
	return v, nil
}

// String renders the canonical "v<n>(.<n>)*" form.
func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return "v" + strings.Join(parts, ".")
}

// Clone returns an independent copy of v.
func (v Version) Clone() Version {
	out := make(Version, len(v))
	copy(out, v)
	return out
}

// Compare implements the partial order from the data model: shorter
// prefixes sort before their extensions (v5.7 < v5.7.1), and sibling
// components compare numerically (v5.7 < v5.8 < v6).
func (v Version) Compare(other Version) int {
	for i := 0; i < len(v) && i < len(other); i++ {
		if v[i] != other[i] {
			if v[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(v) < len(other):
		return -1
	case len(v) > len(other):
		return 1
	default:
		return 0
	}
}

// NextVersion computes the next version at the given level. Level 0
// means "increment the last component"; level k in [1,len(v)]
// increments the k-th component (1-indexed) and truncates the rest;
// level len(v)+1 appends a trailing ".1".
func NextVersion(v Version, level int) (Version, error) {
	if level < 0 || level > len(v)+1 {
		return nil, fmt.Errorf("invalid level %d for version %s", level, v)
	}
	if level == 0 {
		level = len(v)
	}
	if level == len(v)+1 {
		next := append(v.Clone(), 1)
		return next, nil
	}
	next := make(Version, level)
	copy(next, v[:level])
	next[level-1]++
	return next, nil
}

// IsValidNextVersion reports whether next is a legal successor of
// current: exactly one position differs, that position is the last of
// next, and it is either current's value at that position plus one,
// or next extends current by exactly one trailing 1. A next shorter
// than current (a bump at a higher level, e.g. v3.4 -> v4) is valid
// when its prefix matches and its last position is incremented.
func IsValidNextVersion(current, next Version) bool {
	if len(next) <= len(current) {
		if len(next) == 0 {
			return false
		}
		for i := 0; i < len(next)-1; i++ {
			if current[i] != next[i] {
				return false
			}
		}
		return next[len(next)-1] == current[len(next)-1]+1
	}
	if len(next) == len(current)+1 {
		for i := range current {
			if current[i] != next[i] {
				return false
			}
		}
		return next[len(next)-1] == 1
	}
	return false
}

// NoneDigest is the sentinel digest marking a citation used only as a
// name, with no content binding yet.
const NoneDigest = ""

// Citation is an immutable record citing a specific piece of content,
// or a name when Digest is NoneDigest.
type Citation struct {
	Protocol  string `json:"protocol"`
	Tag       Tag    `json:"tag"`
	Version   Version `json:"version"`
	Digest    string `json:"digest"`
	Timestamp *int64 `json:"timestamp,omitempty"`
}

// IsNone reports whether this citation is the sentinel NONE citation
// (no tag/version at all — used for D.previous and D.certificate when
// absent).
func (c Citation) IsNone() bool {
	return c.Tag == "" && len(c.Version) == 0
}

// Same reports whether two citations cite the same document: they
// agree on (tag, version, digest).
func (c Citation) Same(other Citation) bool {
	return c.Tag == other.Tag && c.Version.String() == other.Version.String() && c.Digest == other.Digest
}

// ErrInvalidCitation is returned by ExtractID when a citation is
// missing its tag or version slot.
var ErrInvalidCitation = fmt.Errorf("invalid citation: missing tag or version")

// ExtractID returns the flat store key tag||version for a citation.
// It fails when either slot is missing.
func ExtractID(c Citation) (string, error) {
	if c.Tag == "" || len(c.Version) == 0 {
		return "", ErrInvalidCitation
	}
	return string(c.Tag) + c.Version.String(), nil
}
