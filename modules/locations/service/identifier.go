package service

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// IdentifierKind discriminates the parsed identifier variant.
type IdentifierKind int

const (
	IdentifierNone IdentifierKind = iota
	IdentifierNumeric
	IdentifierLabel
)

// Identifier is the canonical form of a calendar or appointment-type
// reference. Provider IDs are integers but arrive from query strings and
// config documents as text, numbers, or objects; everything is funneled
// through ParseIdentifier once at the boundary so internal logic never
// re-inspects raw JSON shapes.
type Identifier struct {
	Kind    IdentifierKind
	Numeric int64
	Label   string
}

var numericPattern = regexp.MustCompile(`^\d+$`)

// ParseIdentifier normalizes any of {number, numeric string, free-text name,
// object with "id" or "name"} into an Identifier. Numeric strings always
// resolve to numbers, never stay labels. Object inputs recurse once into
// "id", falling back to "name". Empty or unparsable input yields
// IdentifierNone.
func ParseIdentifier(v any) Identifier {
	return parseIdentifier(v, true)
}

func parseIdentifier(v any, allowObject bool) Identifier {
	switch value := v.(type) {
	case nil:
		return Identifier{}
	case int:
		return Identifier{Kind: IdentifierNumeric, Numeric: int64(value)}
	case int64:
		return Identifier{Kind: IdentifierNumeric, Numeric: value}
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return Identifier{}
		}
		return Identifier{Kind: IdentifierNumeric, Numeric: int64(value)}
	case json.Number:
		return parseIdentifier(string(value), false)
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return Identifier{}
		}
		if numericPattern.MatchString(trimmed) {
			n, err := strconv.ParseInt(trimmed, 10, 64)
			if err != nil {
				// Overflows the provider's id space; treat as unparseable.
				return Identifier{}
			}
			return Identifier{Kind: IdentifierNumeric, Numeric: n}
		}
		return Identifier{Kind: IdentifierLabel, Label: trimmed}
	case map[string]any:
		if !allowObject {
			return Identifier{}
		}
		if id := parseIdentifier(value["id"], false); id.Kind != IdentifierNone {
			return id
		}
		return parseIdentifier(value["name"], false)
	default:
		return Identifier{}
	}
}

// NormalizeLocationKey produces the spaced canonical form: lowercase,
// trimmed, internal whitespace collapsed to single spaces.
func NormalizeLocationKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// CompactKey strips all internal whitespace from the spaced form.
func CompactKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

// SlugKey is the hyphenated form ("old town" -> "old-town"); configuration
// documents use all three conventions inconsistently.
func SlugKey(s string) string {
	return slug.Make(s)
}

// KeyForms returns the lookup candidates for a location input, deduplicated,
// in the order tables are consulted: spaced, compact, slug.
func KeyForms(s string) []string {
	spaced := NormalizeLocationKey(s)
	if spaced == "" {
		return nil
	}
	forms := []string{spaced}
	for _, form := range []string{CompactKey(s), SlugKey(spaced)} {
		if form != "" && !containsString(forms, form) {
			forms = append(forms, form)
		}
	}
	return forms
}

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// IsZip reports whether the location input looks like a 5-digit ZIP code.
func IsZip(s string) bool {
	return zipPattern.MatchString(strings.TrimSpace(s))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
