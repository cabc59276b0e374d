package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// ErrUnknownField is returned by ParsePatch for keys that name no parameter.
	ErrUnknownField = errors.New("unknown grid field")
	// ErrBadValue is returned by ParsePatch when a value has the wrong kind.
	ErrBadValue = errors.New("bad grid value")
)

// patchLexer tokenises "key=value" lists such as
//
//	gridN=8, cellSize=40 rotation=-15 lineColor=#ff0000
var patchLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Color", Pattern: `#[0-9A-Fa-f]+`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[=,;]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type patchExpr struct {
	Assignments []*assignment `parser:"@@*"`
}

type assignment struct {
	Pos   lexer.Position
	Key   string      `parser:"@Ident '='"`
	Value *patchValue `parser:"@@ (',' | ';')?"`
}

type patchValue struct {
	Number *float64 `parser:"  @Number"`
	Color  *string  `parser:"| @Color"`
	String *string  `parser:"| @String"`
	Ident  *string  `parser:"| @Ident"`
}

func (v *patchValue) text() (string, bool) {
	switch {
	case v.Color != nil:
		return *v.Color, true
	case v.String != nil:
		return *v.String, true
	case v.Ident != nil:
		return *v.Ident, true
	}
	return "", false
}

var patchParser = participle.MustBuild[patchExpr](
	participle.Lexer(patchLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

type fieldKind int

const (
	numericField fieldKind = iota
	colorField
)

type fieldSpec struct {
	kind fieldKind
	set  func(p *Patch, num float64, text string)
}

// patchFields maps normalised keys (and short aliases) to patch fields.
var patchFields = map[string]fieldSpec{
	"gridn":       {numericField, func(p *Patch, n float64, _ string) { p.GridN = Float(n) }},
	"n":           {numericField, func(p *Patch, n float64, _ string) { p.GridN = Float(n) }},
	"cellsize":    {numericField, func(p *Patch, n float64, _ string) { p.CellSize = Float(n) }},
	"cell":        {numericField, func(p *Patch, n float64, _ string) { p.CellSize = Float(n) }},
	"rotation":    {numericField, func(p *Patch, n float64, _ string) { p.Rotation = Float(n) }},
	"rot":         {numericField, func(p *Patch, n float64, _ string) { p.Rotation = Float(n) }},
	"positionx":   {numericField, func(p *Patch, n float64, _ string) { p.PositionX = Float(n) }},
	"x":           {numericField, func(p *Patch, n float64, _ string) { p.PositionX = Float(n) }},
	"positiony":   {numericField, func(p *Patch, n float64, _ string) { p.PositionY = Float(n) }},
	"y":           {numericField, func(p *Patch, n float64, _ string) { p.PositionY = Float(n) }},
	"linecolor":   {colorField, func(p *Patch, _ float64, t string) { p.LineColor = String(t) }},
	"color":       {colorField, func(p *Patch, _ float64, t string) { p.LineColor = String(t) }},
	"linewidth":   {numericField, func(p *Patch, n float64, _ string) { p.LineWidth = Float(n) }},
	"width":       {numericField, func(p *Patch, n float64, _ string) { p.LineWidth = Float(n) }},
	"lineopacity": {numericField, func(p *Patch, n float64, _ string) { p.LineOpacity = Float(n) }},
	"opacity":     {numericField, func(p *Patch, n float64, _ string) { p.LineOpacity = Float(n) }},
}

// ParsePatch parses a textual batch update. Keys are case-insensitive and
// may be written camelCase or snake_case.
// Values are not range checked here; Apply clamps them.
func ParsePatch(s string) (Patch, error) {
	var p Patch
	expr, err := patchParser.ParseString("", s)
	if err != nil {
		return p, fmt.Errorf("parse patch: %w", err)
	}
	for _, a := range expr.Assignments {
		spec, ok := patchFields[fieldKey(a.Key)]
		if !ok {
			return Patch{}, fmt.Errorf("%s: %w %q", a.Pos, ErrUnknownField, a.Key)
		}
		switch spec.kind {
		case numericField:
			if a.Value.Number == nil {
				return Patch{}, fmt.Errorf("%s: %w: %s wants a number", a.Pos, ErrBadValue, a.Key)
			}
			spec.set(&p, *a.Value.Number, "")
		case colorField:
			text, ok := a.Value.text()
			if !ok {
				return Patch{}, fmt.Errorf("%s: %w: %s wants a color", a.Pos, ErrBadValue, a.Key)
			}
			spec.set(&p, 0, text)
		}
	}
	return p, nil
}

func fieldKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(k), "_", "")
}
