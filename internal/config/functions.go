package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/jsvensson/hclsliders/internal/color"
	"github.com/jsvensson/hclsliders/internal/css"
)

// funcNames maps HCL function names to the model each constructs.
var funcNames = map[string]color.Model{
	"srgb":        color.SRGB,
	"linear_srgb": color.LinearSRGB,
	"hsv":         color.HSV,
	"hsl":         color.HSL,
	"hcy":         color.HCY,
	"oklab":       color.Oklab,
	"oklch":       color.Oklch,
	"okhsv":       color.OKHSV,
	"okhsl":       color.OKHSL,
	"okhcl":       color.OKHCL,
}

// IsColorFunc reports whether a call to name evaluates to color text: the
// model constructors and css.
func IsColorFunc(name string) bool {
	_, ok := funcNames[name]
	return ok || name == "css"
}

// FuncName returns the HCL function that constructs colors in model m.
func FuncName(m color.Model) string {
	for name, fm := range funcNames {
		if fm == m {
			return name
		}
	}
	return ""
}

// ModelOf returns the model a constructor function builds.
func ModelOf(name string) (color.Model, bool) {
	m, ok := funcNames[name]
	return m, ok
}

// CallText renders c as a call to the constructor for model m, such as
// okhsl(29.23, 1, 0.5683). Channels are rounded to 4 decimals.
func CallText(c color.Color, m color.Model) string {
	c = color.Convert(c, m)
	args := make([]string, 0, 4)
	for _, v := range c.V {
		args = append(args, callNumber(v))
	}
	if c.Alpha < 1 {
		args = append(args, callNumber(c.Alpha))
	}
	return FuncName(m) + "(" + strings.Join(args, ", ") + ")"
}

func callNumber(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MakeModelFunc creates an HCL function that builds a color from three
// channels in engine units and an optional alpha, and returns its CSS text.
// Usage: oklch(0.7, 0.1, 30) or hsv(200, 0.5, 0.8, 0.5)
func MakeModelFunc(m color.Model) function.Function {
	ch := m.Channels()
	return function.New(&function.Spec{
		Description: fmt.Sprintf("Returns the CSS text of a %s color", m),
		Params: []function.Parameter{
			{Name: ch[0], Type: cty.Number},
			{Name: ch[1], Type: cty.Number},
			{Name: ch[2], Type: cty.Number},
		},
		VarParam: &function.Parameter{Name: "alpha", Type: cty.Number},
		Type:     function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			if len(args) > 4 {
				return cty.NilVal, function.NewArgErrorf(4, "%s takes at most one alpha argument", m)
			}
			v := make([]float64, len(args))
			for i, a := range args {
				v[i], _ = a.AsBigFloat().Float64()
			}
			c := color.New(m, v[0], v[1], v[2])
			if len(v) == 4 {
				if v[3] < 0 || v[3] > 1 {
					return cty.NilVal, function.NewArgErrorf(3, "alpha must be between 0 and 1")
				}
				c = c.WithAlpha(v[3])
			}
			return cty.StringVal(css.Serialize(c, m)), nil
		},
	})
}

// MakeConvertFunc creates an HCL function that returns the channels of a
// color text in another model.
// Usage: convert("#eb6f92", "okhsl")
func MakeConvertFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns the channels of a color in the given model",
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: "model", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.List(cty.Number)),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := css.Parse(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			m, err := color.ParseModel(args[1].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(1, err)
			}
			out := color.Convert(c, m)
			return cty.ListVal([]cty.Value{
				cty.NumberFloatVal(out.V[0]),
				cty.NumberFloatVal(out.V[1]),
				cty.NumberFloatVal(out.V[2]),
			}), nil
		},
	})
}

// MakeCSSFunc creates an HCL function that rewrites color text in another
// notation.
// Usage: css("#eb6f92", "oklch")
func MakeCSSFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Rewrites a color in hex, oklab or oklch notation",
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: "notation", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := css.Parse(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			n, err := css.ParseNotation(args[1].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(1, err)
			}
			return cty.StringVal(css.Format(c, n)), nil
		},
	})
}

// EvalContext creates the HCL evaluation context settings files are decoded
// with: one constructor per color model plus convert and css.
func EvalContext() *hcl.EvalContext {
	funcs := make(map[string]function.Function, len(funcNames)+2)
	for name, m := range funcNames {
		funcs[name] = MakeModelFunc(m)
	}
	funcs["convert"] = MakeConvertFunc()
	funcs["css"] = MakeCSSFunc()
	return &hcl.EvalContext{Functions: funcs}
}
