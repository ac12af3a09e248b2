package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// LanguageKind is the source language of the project.
type LanguageKind int

const (
	// LangC is ISO C.
	LangC LanguageKind = iota
	// LangCXX is ISO C++.
	LangCXX
)

// String returns the manifest spelling of the language.
func (k LanguageKind) String() string {
	if k == LangCXX {
		return "c++"
	}
	return "c"
}

// Standard is a two-digit ISO standard revision (e.g. 99, 11, 17, 20).
// StandardLatest requests the newest draft the toolchain knows about.
type Standard int

// StandardLatest selects the newest draft standard.
const StandardLatest Standard = -1

// Year returns the four-digit year of the revision, used for ordering.
// Latest sorts after every numbered revision.
func (s Standard) Year() int {
	switch {
	case s == StandardLatest:
		return 9999
	case s >= 80:
		return 1900 + int(s)
	default:
		return 2000 + int(s)
	}
}

// Before reports whether s is an older revision than other.
func (s Standard) Before(other Standard) bool {
	return s.Year() < other.Year()
}

// String returns the two-digit form ("03", "17") or "latest".
func (s Standard) String() string {
	if s == StandardLatest {
		return "latest"
	}
	if s < 10 {
		return "0" + strconv.Itoa(int(s))
	}
	return strconv.Itoa(int(s))
}

var (
	cStandards   = []Standard{89, 99, 11, 17, 23}
	cxxStandards = []Standard{98, 3, 11, 14, 17, 20, 23, 26}
)

// Language is the source language together with its standard revision.
type Language struct {
	Kind     LanguageKind
	Standard Standard
}

// IsCXX reports whether the language is C++.
func (l Language) IsCXX() bool {
	return l.Kind == LangCXX
}

// SourceExts returns the translation-unit extensions collected for this language.
func (l Language) SourceExts() []string {
	if l.IsCXX() {
		return []string{".cpp", ".cc", ".cxx", ".c++"}
	}
	return []string{".c"}
}

// HeaderExts returns the header extensions tracked for conservative staleness.
func HeaderExts() []string {
	return []string{".h", ".hh", ".hpp", ".hxx", ".h++", ".inl", ".ipp"}
}

// ParseLanguage parses the manifest language and standard fields.
// An empty standard selects C17 or C++17.
func ParseLanguage(lang, standard string) (Language, error) {
	var kind LanguageKind
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "c":
		kind = LangC
	case "", "c++", "cpp", "cxx":
		kind = LangCXX
	default:
		return Language{}, zerr.With(zerr.Wrap(ErrInvalidLanguage, "unsupported language"), "language", lang)
	}

	std, err := parseStandard(kind, standard)
	if err != nil {
		return Language{}, err
	}
	return Language{Kind: kind, Standard: std}, nil
}

func parseStandard(kind LanguageKind, raw string) (Standard, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.TrimPrefix(raw, "c++")
	raw = strings.TrimPrefix(raw, "c")
	switch raw {
	case "":
		return 17, nil
	case "latest":
		return StandardLatest, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(ErrInvalidStandard, "standard is not a number"), "standard", raw)
	}
	if n >= 1900 {
		n %= 100
	}

	known := cStandards
	if kind == LangCXX {
		known = cxxStandards
	}
	for _, s := range known {
		if int(s) == n {
			return s, nil
		}
	}
	return 0, zerr.With(zerr.With(zerr.Wrap(ErrInvalidStandard, "unknown revision"), "standard", raw), "language", kind.String())
}
