// Package catalog holds the static lesson content: the twelve tenses and
// the question pools the games draw from.
package catalog

import (
	"fmt"
	"slices"
)

// catalog holds the content tables with precomputed indices.
type catalog struct {
	tenses []Tense
	byID   map[string]*Tense
	byName map[string]*Tense
	pools  map[string]Pool
}

var c = buildCatalog()

func buildCatalog() *catalog {
	cat := &catalog{
		tenses: tenseSeed,
		byID:   make(map[string]*Tense, len(tenseSeed)),
		byName: make(map[string]*Tense, len(tenseSeed)),
		pools:  make(map[string]Pool),
	}
	for i := range cat.tenses {
		cat.byID[cat.tenses[i].ID] = &cat.tenses[i]
		cat.byName[cat.tenses[i].Name] = &cat.tenses[i]
	}

	base := map[string][]Question{
		PoolPreTest:  preTestSeed,
		PoolPostTest: postTestSeed,
		PoolGarden:   gardenSeed,
		PoolMachine:  machineSeed,
		PoolQuest:    questSeed,
		PoolScramble: scrambleSeed,
		PoolMatch:    matchSeed,
	}
	for name, qs := range base {
		cat.pools[name] = Pool{Name: name, Questions: qs}
	}
	cat.pools[PoolSniper] = Pool{
		Name:      PoolSniper,
		Questions: concat(preTestSeed, postTestSeed),
	}
	cat.pools[PoolSentences] = Pool{
		Name: PoolSentences,
		Questions: concat(preTestSeed, postTestSeed, gardenSeed, machineSeed,
			questSeed, scrambleSeed, matchSeed),
	}
	return cat
}

func concat(groups ...[]Question) []Question {
	var out []Question
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Tenses returns all tenses in canonical order.
func Tenses() []Tense {
	return slices.Clone(c.tenses)
}

// ByEra returns the tenses of one era in canonical order.
func ByEra(e Era) []Tense {
	var out []Tense
	for _, t := range c.tenses {
		if t.Era == e {
			out = append(out, t)
		}
	}
	return out
}

// GetTense returns the tense with the given ID.
func GetTense(id string) (Tense, error) {
	t, ok := c.byID[id]
	if !ok {
		return Tense{}, fmt.Errorf("tense not found: %s", id)
	}
	return *t, nil
}

// GetPool returns a copy of the named pool.
func GetPool(name string) (Pool, error) {
	p, ok := c.pools[name]
	if !ok {
		return Pool{}, fmt.Errorf("pool not found: %s", name)
	}
	return Pool{Name: p.Name, Questions: slices.Clone(p.Questions)}, nil
}

// PoolNames returns the names of all pools, sorted.
func PoolNames() []string {
	names := make([]string, 0, len(c.pools))
	for name := range c.pools {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Reference is the result of resolving a topic label against the
// catalog. Found is false when nothing matched, in which case Tense is
// the zero value.
type Reference struct {
	Label string
	Tense Tense
	Found bool
}

// Resolve maps a topic label to a tense by exact name or ID. Unknown
// labels resolve to an empty reference.
func Resolve(label string) Reference {
	if t, ok := c.byName[label]; ok {
		return Reference{Label: label, Tense: *t, Found: true}
	}
	if t, ok := c.byID[label]; ok {
		return Reference{Label: label, Tense: *t, Found: true}
	}
	return Reference{Label: label}
}

// ResolveAll resolves each label in order.
func ResolveAll(labels []string) []Reference {
	refs := make([]Reference, len(labels))
	for i, l := range labels {
		refs[i] = Resolve(l)
	}
	return refs
}
