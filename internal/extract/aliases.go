package extract

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// AliasTable holds the city/neighborhood alias mappings the location
// extractor consults. It is seeded with sane defaults at package init and
// may be replaced wholesale by LoadFromYAML (cmd/seed does so for its own
// process only) (§4.5) — there is no dynamic re-registration once a job
// binary starts,
// matching the connector registry's one-shot-init rule.
type AliasTable struct {
	mu            sync.RWMutex
	cityAliases   map[string]string            // lowercased alias -> canonical Hebrew name
	neighborhoods map[string]map[string]string // canonical city -> lowercased alias -> canonical neighborhood
}

// Default is the process-wide alias table used by ExtractLocation,
// NormalizeCity, and NormalizeNeighborhood.
var Default = newDefaultAliasTable()

func newDefaultAliasTable() *AliasTable {
	t := &AliasTable{
		cityAliases:   map[string]string{},
		neighborhoods: map[string]map[string]string{},
	}
	t.seedDefaults()
	return t
}

func (t *AliasTable) seedDefaults() {
	cities := map[string][]string{
		"תל אביב":  {"תל אביב", "תל אביב יפו", "tel aviv", "tel-aviv", "ta"},
		"ירושלים":  {"ירושלים", "jerusalem"},
		"חיפה":     {"חיפה", "haifa"},
		"באר שבע":  {"באר שבע", "beer sheva", "beersheba"},
		"רמת גן":   {"רמת גן", "ramat gan"},
		"הרצליה":   {"הרצליה", "herzliya"},
		"נתניה":    {"נתניה", "netanya"},
		"אשדוד":    {"אשדוד", "ashdod"},
		"פתח תקווה": {"פתח תקווה", "petah tikva", "petach tikva"},
		"חולון":    {"חולון", "holon"},
	}
	for canonical, aliases := range cities {
		for _, a := range aliases {
			t.cityAliases[strings.ToLower(a)] = canonical
		}
	}

	neighborhoods := map[string]map[string][]string{
		"תל אביב": {
			"פלורנטין": {"florentin", "פלורנטין"},
			"נווה צדק":  {"neve tzedek", "נווה צדק"},
			"רמת אביב":  {"ramat aviv", "רמת אביב"},
		},
	}
	for city, hoods := range neighborhoods {
		m := map[string]string{}
		for canonical, aliases := range hoods {
			for _, a := range aliases {
				m[strings.ToLower(a)] = canonical
			}
		}
		t.neighborhoods[city] = m
	}
}

// NormalizeCity resolves a raw, structurally-supplied city string to its
// canonical Hebrew name via an exact, case/whitespace-insensitive lookup.
// Returns ("", false) for an unrecognized city; callers must log an
// unknown_city event in that case (§4.5).
func (t *AliasTable) NormalizeCity(raw string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	canonical, ok := t.cityAliases[key]
	return canonical, ok
}

// NormalizeNeighborhood resolves a raw, structurally-supplied neighborhood
// string scoped to an already-normalized canonical city.
func (t *AliasTable) NormalizeNeighborhood(canonicalCity, raw string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	hoods, ok := t.neighborhoods[canonicalCity]
	if !ok {
		return "", false
	}
	canonical, ok := hoods[strings.ToLower(strings.TrimSpace(raw))]
	return canonical, ok
}

// sortedByLengthDesc returns keys sorted longest-first, ties broken
// lexicographically, so the scanning methods below pick the most specific
// alias match deterministically regardless of Go's randomized map order.
func sortedByLengthDesc(keys []string) []string {
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// FindCityInText scans free text for any known city alias, case-insensitively,
// and returns the canonical name of the first (most specific) match. Used by
// ExtractLocation to cover listings whose structured city field is missing or
// unrecognized but whose title/description names a city in free text (§4.5).
func (t *AliasTable) FindCityInText(text string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	lower := strings.ToLower(text)
	aliases := make([]string, 0, len(t.cityAliases))
	for a := range t.cityAliases {
		aliases = append(aliases, a)
	}
	for _, a := range sortedByLengthDesc(aliases) {
		if strings.Contains(lower, a) {
			return t.cityAliases[a], true
		}
	}
	return "", false
}

// FindNeighborhoodInText scans free text for a neighborhood alias scoped to
// canonicalCity, the text-scanning counterpart to NormalizeNeighborhood.
func (t *AliasTable) FindNeighborhoodInText(canonicalCity, text string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	hoods, ok := t.neighborhoods[canonicalCity]
	if !ok {
		return "", false
	}
	lower := strings.ToLower(text)
	aliases := make([]string, 0, len(hoods))
	for a := range hoods {
		aliases = append(aliases, a)
	}
	for _, a := range sortedByLengthDesc(aliases) {
		if strings.Contains(lower, a) {
			return hoods[a], true
		}
	}
	return "", false
}

// aliasYAML is the on-disk shape cmd/seed parses, grouping aliases by
// canonical name the same way the defaults above are structured.
type aliasYAML struct {
	Cities []struct {
		Canonical     string   `yaml:"canonical"`
		Aliases       []string `yaml:"aliases"`
		Neighborhoods []struct {
			Canonical string   `yaml:"canonical"`
			Aliases   []string `yaml:"aliases"`
		} `yaml:"neighborhoods"`
	} `yaml:"cities"`
}

// LoadFromYAML replaces t's tables with the contents of the YAML file at
// path. Used once at process start by cmd/seed; never called mid-run.
func (t *AliasTable) LoadFromYAML(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("op=aliases.load_yaml.read: %w", err)
	}
	var doc aliasYAML
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("op=aliases.load_yaml.parse: %w", err)
	}

	cityAliases := map[string]string{}
	neighborhoods := map[string]map[string]string{}
	for _, c := range doc.Cities {
		for _, a := range c.Aliases {
			cityAliases[strings.ToLower(a)] = c.Canonical
		}
		hoods := map[string]string{}
		for _, n := range c.Neighborhoods {
			for _, a := range n.Aliases {
				hoods[strings.ToLower(a)] = n.Canonical
			}
		}
		if len(hoods) > 0 {
			neighborhoods[c.Canonical] = hoods
		}
	}

	t.mu.Lock()
	t.cityAliases = cityAliases
	t.neighborhoods = neighborhoods
	t.mu.Unlock()
	return nil
}
