/*
Package props resolves Unicode properties, property values and scripts by name,
and maps locales to the scripts used to write them.

Names are matched loosely, following UAX#44-LM3: case, whitespace, underscores
and hyphens are ignored, as is an initial prefix "is". Thus "Lu",
"uppercase letter" and "isUppercase_Letter" all name the same value of property
General_Category.

Property data is taken from Go's unicode package; names and aliases come from
an embedded file in the format of the Unicode Character Database.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package props

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uniset"
	"github.com/npillmayer/uniset/internal/ucdparse"
	"golang.org/x/text/unicode/rangetable"
)

// T traces to the core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ErrUnknownProperty is returned for property names without a matching property.
// ErrUnknownValue is returned for values not known for a property.
var (
	ErrUnknownProperty = errors.New("unknown Unicode property")
	ErrUnknownValue    = errors.New("unknown Unicode property value")
)

// Property is a Unicode character property, identified by its long name.
type Property string

// Enumerated properties. All other properties are binary.
const (
	GeneralCategory Property = "General_Category"
	ScriptProperty  Property = "Script"
)

// IsBinary is true for properties with values Yes and No.
func (p Property) IsBinary() bool {
	return p != GeneralCategory && p != ScriptProperty
}

//go:embed aliases.txt
var aliasData []byte

var (
	setupOnce     sync.Once
	propertyIndex map[string]Property // normalized alias → property
	categoryIndex map[string]string   // normalized alias → general category short name
)

// setupTables reads the alias file. It is safe to call it more than once.
func setupTables() {
	setupOnce.Do(func() {
		propertyIndex = make(map[string]Property)
		categoryIndex = make(map[string]string)
		scriptIndex = make(map[string]Script)
		scriptTable = []scriptInfo{{code: "Zzzz", name: "Unknown"}}
		err := ucdparse.Parse(bytes.NewReader(aliasData), func(token *ucdparse.Token) {
			switch {
			case len(token.Fields) == 2:
				registerProperty(token.Field(0), token.Field(1))
			case token.Field(0) == "gc":
				categoryIndex[normalize(token.Field(1))] = token.Field(1)
				categoryIndex[normalize(token.Field(2))] = token.Field(1)
			case token.Field(0) == "sc":
				registerScript(token.Field(1), token.Field(2))
			}
		})
		if err != nil {
			panic(fmt.Sprintf("props: corrupt alias data: %v", err))
		}
		T().P("scripts", len(scriptTable)).Debugf("property tables set up")
	})
}

func registerProperty(short, long string) {
	p := Property(long)
	if p.IsBinary() && unicode.Properties[long] == nil {
		T().Debugf("property %s not supported by package unicode", long)
		return
	}
	propertyIndex[normalize(short)] = p
	propertyIndex[normalize(long)] = p
}

var looseReplacer = strings.NewReplacer(" ", "", "_", "", "-", "", "\t", "")

// normalize prepares a name for loose matching.
func normalize(name string) string {
	n := strings.ToLower(looseReplacer.Replace(name))
	if strings.HasPrefix(n, "is") && n != "is" {
		return n[2:]
	}
	return n
}

// PropertyByName finds a property by short or long name.
func PropertyByName(name string) (Property, error) {
	setupTables()
	if p, ok := propertyIndex[normalize(name)]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProperty, name)
}

// ValueByName returns the code points having value for property p. For binary
// properties, values are Yes/No, True/False or their abbreviations Y/N, T/F.
func ValueByName(p Property, value string) (*unicode.RangeTable, error) {
	setupTables()
	switch p {
	case GeneralCategory:
		if cat, ok := categoryIndex[normalize(value)]; ok {
			if rt := categoryTable(cat); rt != nil {
				return rt, nil
			}
		}
	case ScriptProperty:
		if s, err := ScriptByName(value); err == nil {
			return s.RangeTable(), nil
		}
	default:
		rt := unicode.Properties[string(p)]
		if rt == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, p)
		}
		switch normalize(value) {
		case "yes", "y", "true", "t":
			return rt, nil
		case "no", "n", "false", "f":
			return complement(rt), nil
		}
	}
	return nil, fmt.Errorf("%w: %s=%s", ErrUnknownValue, p, value)
}

// RangeTableFor resolves a property expression, either "Property=Value" or a single
// name. A single name is looked up as a General_Category value first, then as a
// script, and last as a binary property. The names "Any", "ASCII" and "Assigned"
// are recognized as well.
func RangeTableFor(expr string) (*unicode.RangeTable, error) {
	setupTables()
	if i := strings.IndexAny(expr, "=:"); i >= 0 {
		p, err := PropertyByName(expr[:i])
		if err != nil {
			return nil, err
		}
		return ValueByName(p, expr[i+1:])
	}
	switch normalize(expr) {
	case "any":
		return anyTable, nil
	case "ascii":
		return asciiTable, nil
	case "assigned":
		return assignedTable(), nil
	}
	if cat, ok := categoryIndex[normalize(expr)]; ok {
		if rt := categoryTable(cat); rt != nil {
			return rt, nil
		}
	}
	if s, err := ScriptByName(expr); err == nil {
		return s.RangeTable(), nil
	}
	if p, err := PropertyByName(expr); err == nil && p.IsBinary() {
		return ValueByName(p, "Yes")
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, expr)
}

// SetFor returns the code points having value for property p as a Unicode set.
func SetFor(p Property, value string) (*uniset.UnicodeSet, error) {
	rt, err := ValueByName(p, value)
	if err != nil {
		return nil, err
	}
	return uniset.NewBuilder().AddRangeTable(rt).Freeze(), nil
}

var (
	anyTable = &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0, Hi: 0xffff, Stride: 1}},
		R32: []unicode.Range32{{Lo: 0x10000, Hi: uniset.MaxRune, Stride: 1}},
	}
	asciiTable = rangetable.New(asciiRunes()...)

	assignedOnce sync.Once
	assigned     *unicode.RangeTable
)

func asciiRunes() []rune {
	r := make([]rune, 0x80)
	for i := range r {
		r[i] = rune(i)
	}
	return r
}

// assignedTable merges all general categories, i.e. all categories except Cn.
func assignedTable() *unicode.RangeTable {
	assignedOnce.Do(func() {
		tables := make([]*unicode.RangeTable, 0, len(unicode.Categories))
		for _, rt := range unicode.Categories {
			tables = append(tables, rt)
		}
		assigned = rangetable.Merge(tables...)
	})
	return assigned
}

func categoryTable(cat string) *unicode.RangeTable {
	switch cat {
	case "Cn":
		return complement(assignedTable())
	case "LC":
		return rangetable.Merge(unicode.Lu, unicode.Ll, unicode.Lt)
	}
	return unicode.Categories[cat]
}

func complement(rt *unicode.RangeTable) *unicode.RangeTable {
	return uniset.NewBuilder().AddRangeTable(rt).Complement().Freeze().RangeTable()
}
