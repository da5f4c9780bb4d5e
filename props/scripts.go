package props

import (
	"fmt"
	"sort"
	"sync"
	"unicode"

	"github.com/npillmayer/uniset"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/rangetable"
)

// Script identifies a Unicode script (property value of Script).
// The zero value is Unknown.
type Script int

// Unknown is the script of unassigned and private use code points, and of
// surrogates.
const Unknown Script = 0

type scriptInfo struct {
	code  string // ISO 15924
	name  string // Unicode long name
	table *unicode.RangeTable
}

var (
	scriptTable []scriptInfo      // indexed by Script
	scriptIndex map[string]Script // normalized code or name → script
)

func registerScript(code, name string) {
	if code == "Zzzz" {
		scriptIndex[normalize(code)] = Unknown
		scriptIndex[normalize(name)] = Unknown
		return
	}
	rt := unicode.Scripts[name]
	if rt == nil {
		T().Debugf("script %s not supported by package unicode", name)
		return
	}
	if _, err := language.ParseScript(code); err != nil {
		T().Infof("script code %s is not known to package language", code)
	}
	s := Script(len(scriptTable))
	scriptTable = append(scriptTable, scriptInfo{code: code, name: name, table: rt})
	scriptIndex[normalize(code)] = s
	scriptIndex[normalize(name)] = s
}

// Scripts returns all known scripts, starting with Unknown.
func Scripts() []Script {
	setupTables()
	scripts := make([]Script, len(scriptTable))
	for i := range scripts {
		scripts[i] = Script(i)
	}
	return scripts
}

// ScriptByName finds a script by ISO 15924 code ("Latn") or by long name
// ("Latin"). Matching is loose.
func ScriptByName(name string) (Script, error) {
	setupTables()
	if s, ok := scriptIndex[normalize(name)]; ok {
		return s, nil
	}
	return Unknown, fmt.Errorf("%w: script %q", ErrUnknownValue, name)
}

func (s Script) info() scriptInfo {
	setupTables()
	if s < 0 || int(s) >= len(scriptTable) {
		return scriptTable[Unknown]
	}
	return scriptTable[s]
}

// Code returns the ISO 15924 code of s.
func (s Script) Code() string {
	return s.info().code
}

// Name returns the Unicode long name of s.
func (s Script) Name() string {
	return s.info().name
}

func (s Script) String() string {
	return s.Name()
}

// LanguageScript converts s to a script identifier of package language.
func (s Script) LanguageScript() (language.Script, error) {
	return language.ParseScript(s.Code())
}

// RangeTable returns the code points of script s. For Unknown, this is every
// code point not assigned to any script.
func (s Script) RangeTable() *unicode.RangeTable {
	if s == Unknown {
		return unknownTable()
	}
	return s.info().table
}

// ScriptSet returns the union of the code points of scripts as a Unicode set.
func ScriptSet(scripts ...Script) *uniset.UnicodeSet {
	tables := make([]*unicode.RangeTable, 0, len(scripts))
	for _, s := range scripts {
		tables = append(tables, s.RangeTable())
	}
	return uniset.NewBuilder().AddRangeTable(rangetable.Merge(tables...)).Freeze()
}

// --- Script of a code point -------------------------------------------

type scriptRange struct {
	lo, hi rune
	script Script
}

var (
	rangesOnce   sync.Once
	scriptRanges []scriptRange // sorted and disjoint
	unknown      *unicode.RangeTable
)

func setupScriptRanges() {
	rangesOnce.Do(func() {
		setupTables()
		all := make([]*unicode.RangeTable, 0, len(scriptTable))
		for i, info := range scriptTable[1:] {
			s := Script(i + 1)
			appendRanges(info.table, s)
			all = append(all, info.table)
		}
		sort.Slice(scriptRanges, func(i, j int) bool {
			return scriptRanges[i].lo < scriptRanges[j].lo
		})
		unknown = complement(rangetable.Merge(all...))
		T().Debugf("script lookup uses %d ranges", len(scriptRanges))
	})
}

func appendRanges(rt *unicode.RangeTable, s Script) {
	add := func(lo, hi, stride rune) {
		if stride == 1 {
			scriptRanges = append(scriptRanges, scriptRange{lo, hi, s})
			return
		}
		for r := lo; r <= hi; r += stride {
			scriptRanges = append(scriptRanges, scriptRange{r, r, s})
		}
	}
	for _, r := range rt.R16 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range rt.R32 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
}

func unknownTable() *unicode.RangeTable {
	setupScriptRanges()
	return unknown
}

// ScriptOf returns the script of code point r, or Unknown.
func ScriptOf(r rune) Script {
	setupScriptRanges()
	i := sort.Search(len(scriptRanges), func(i int) bool {
		return scriptRanges[i].hi >= r
	})
	if i < len(scriptRanges) && scriptRanges[i].lo <= r {
		return scriptRanges[i].script
	}
	return Unknown
}
