// Package namespace parses, validates, and converts hierarchical command
// identifiers. Namespaces address commands consistently in either
// colon-separated ("project:frontend:component") or slash-separated
// ("project/frontend/component") form; the colon form is canonical.
//
// All functions are pure. Failures are reported as Validation-kind errors.
package namespace

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/slashcmd/slashcmd/internal/errors"
)

// Parsed is the canonical decomposition of a namespace string.
type Parsed struct {
	// Original is the input as given, untrimmed.
	Original string
	// Segments is the ordered, non-empty list of path segments.
	Segments []string
	// Path is the segments joined with "/".
	Path string
	// Depth is the number of segments.
	Depth int
}

// ColonSeparated returns the canonical colon-joined form.
func (p Parsed) ColonSeparated() string {
	return strings.Join(p.Segments, ":")
}

// Options bounds strict validation.
type Options struct {
	// MaxDepth is the maximum allowed segment count.
	MaxDepth int
	// MinDepth is the minimum allowed segment count.
	MinDepth int
	// SegmentPattern is matched against every segment.
	SegmentPattern *regexp.Regexp
	// AllowEmptySegments keeps blank segments produced by the split
	// instead of dropping them, and exempts them from the pattern check.
	AllowEmptySegments bool
}

// Segments are alphanumeric runs with optional internal hyphens; no
// leading or trailing hyphen.
var defaultSegmentPattern = regexp.MustCompile(`^[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*$`)

// DefaultOptions returns the standard validation bounds.
func DefaultOptions() Options {
	return Options{
		MaxDepth:       5,
		MinDepth:       1,
		SegmentPattern: defaultSegmentPattern,
	}
}

// Parse decomposes a namespace string into its segments.
//
// Separator selection honors exactly one separator kind per call: colon if
// present, otherwise slash, otherwise the whole trimmed string is a single
// segment. Input containing both separators is ambiguous and rejected
// outright rather than silently preferring one. Blank segments produced by
// the split are dropped.
func Parse(namespace string) (Parsed, error) {
	return parse(namespace, false)
}

func parse(namespace string, keepEmpty bool) (Parsed, error) {
	trimmed := strings.TrimSpace(namespace)
	if trimmed == "" {
		return Parsed{}, errors.NewValidation("namespace is empty",
			"provide a namespace such as \"project:frontend:component\"")
	}

	hasColon := strings.Contains(trimmed, ":")
	hasSlash := strings.Contains(trimmed, "/")
	if hasColon && hasSlash {
		return Parsed{}, errors.Newf(errors.Validation,
			"namespace %q mixes ':' and '/' separators; use one kind", namespace)
	}

	var raw []string
	switch {
	case hasColon:
		raw = strings.Split(trimmed, ":")
	case hasSlash:
		raw = strings.Split(trimmed, "/")
	default:
		raw = []string{trimmed}
	}

	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" && !keepEmpty {
			continue
		}
		segments = append(segments, s)
	}
	if len(segments) == 0 {
		return Parsed{}, errors.Newf(errors.Validation, "namespace %q has no segments", namespace)
	}

	return Parsed{
		Original: namespace,
		Segments: segments,
		Path:     strings.Join(segments, "/"),
		Depth:    len(segments),
	}, nil
}

// ValidateStrict re-parses the namespace and checks it against the given
// options. The returned error names the violated bound or the offending
// segment. A zero Options value for MaxDepth/MinDepth/SegmentPattern falls
// back to the defaults.
func ValidateStrict(namespace string, opts Options) (Parsed, error) {
	defaults := DefaultOptions()
	if opts.MaxDepth == 0 {
		opts.MaxDepth = defaults.MaxDepth
	}
	if opts.MinDepth == 0 {
		opts.MinDepth = defaults.MinDepth
	}
	if opts.SegmentPattern == nil {
		opts.SegmentPattern = defaults.SegmentPattern
	}

	parsed, err := parse(namespace, opts.AllowEmptySegments)
	if err != nil {
		return Parsed{}, err
	}

	if parsed.Depth < opts.MinDepth {
		return Parsed{}, errors.Newf(errors.Validation,
			"namespace %q has depth %d, below minimum %d", namespace, parsed.Depth, opts.MinDepth)
	}
	if parsed.Depth > opts.MaxDepth {
		return Parsed{}, errors.Newf(errors.Validation,
			"namespace %q has depth %d, above maximum %d", namespace, parsed.Depth, opts.MaxDepth)
	}

	for _, seg := range parsed.Segments {
		if seg == "" && opts.AllowEmptySegments {
			continue
		}
		if !opts.SegmentPattern.MatchString(seg) {
			return Parsed{}, errors.New(errors.Validation,
				fmt.Sprintf("namespace segment %q is invalid", seg),
				"segments are alphanumeric with optional internal hyphens")
		}
	}

	return parsed, nil
}

// Validate reports whether the namespace passes strict validation with
// the given options. Any failure converts to false.
func Validate(namespace string, opts Options) bool {
	_, err := ValidateStrict(namespace, opts)
	return err == nil
}

// ToPath converts a namespace to its slash-separated form.
func ToPath(namespace string) (string, error) {
	parsed, err := Parse(namespace)
	if err != nil {
		return "", err
	}
	return parsed.Path, nil
}

// ToColonSeparated converts a namespace to its canonical colon-separated
// form. Round trip holds: ToColonSeparated(ToPath(ns)) yields the colon
// join of ns's segments.
func ToColonSeparated(namespace string) (string, error) {
	parsed, err := Parse(namespace)
	if err != nil {
		return "", err
	}
	return parsed.ColonSeparated(), nil
}

// Parent returns the namespace with its last segment dropped.
// ok is false when the namespace has depth <= 1.
func Parent(namespace string) (parent string, ok bool, err error) {
	parsed, err := Parse(namespace)
	if err != nil {
		return "", false, err
	}
	if parsed.Depth <= 1 {
		return "", false, nil
	}
	return strings.Join(parsed.Segments[:parsed.Depth-1], ":"), true, nil
}

// IsParentOf reports whether parent is a strict, non-reflexive prefix of
// child: every parent segment equals the child's segment at the same
// index, and the parent is shallower.
func IsParentOf(parent, child string) (bool, error) {
	p, err := Parse(parent)
	if err != nil {
		return false, err
	}
	c, err := Parse(child)
	if err != nil {
		return false, err
	}
	if p.Depth >= c.Depth {
		return false, nil
	}
	for i, seg := range p.Segments {
		if c.Segments[i] != seg {
			return false, nil
		}
	}
	return true, nil
}

// Ancestors returns every strict proper prefix of the namespace, from
// shallowest (depth 1) up to depth-1, each in canonical colon form.
func Ancestors(namespace string) ([]string, error) {
	parsed, err := Parse(namespace)
	if err != nil {
		return nil, err
	}
	ancestors := make([]string, 0, parsed.Depth-1)
	for i := 1; i < parsed.Depth; i++ {
		ancestors = append(ancestors, strings.Join(parsed.Segments[:i], ":"))
	}
	return ancestors, nil
}
