package lsp

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"

	"github.com/jsvensson/hclsliders/internal/channel"
	"github.com/jsvensson/hclsliders/internal/color"
	"github.com/jsvensson/hclsliders/internal/config"
	"github.com/jsvensson/hclsliders/internal/css"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

const diagSource = "hclsliders"

// AnalysisResult holds all information produced by analyzing a document.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Colors      []ColorLocation
	// Channels maps a channel name to the label range of its channel block.
	Channels map[string]protocol.Range
}

// ColorLocation records a color found at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.Color
	// Quoted is set when Range covers a string literal including its quotes.
	Quoted bool
	// Call is the HCL function the color was built with, if any.
	Call string
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze produces diagnostics and color locations for a document. Settings
// files are analyzed as HCL; anything else is scanned for hex, oklab() and
// oklch() literals.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Channels: make(map[string]protocol.Range),
	}
	if config.IsSettingsFile(filename) {
		result.analyzeSettings(filename, content)
	} else {
		result.scanText(content)
	}
	return result
}

func (r *AnalysisResult) analyzeSettings(filename, content string) {
	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			r.Diagnostics = append(r.Diagnostics, hclDiagToLSP(d))
		}
		// Cannot proceed with semantic analysis if syntax is broken
		return
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return
	}
	r.walkBody(body, config.EvalContext())

	_, diags = config.Parse([]byte(content), filename)
	for _, d := range diags {
		r.Diagnostics = append(r.Diagnostics, hclDiagToLSP(d))
	}
}

// walkBody collects colors from every attribute in body and its nested
// blocks, in source order.
func (r *AnalysisResult) walkBody(body *hclsyntax.Body, ctx *hcl.EvalContext) {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	for _, attr := range attrs {
		r.collectColors(attr.Expr, ctx)
	}

	for _, block := range body.Blocks {
		if block.Type == "channel" && len(block.Labels) == 1 {
			if ch, err := channel.Lookup(block.Labels[0]); err == nil {
				if _, seen := r.Channels[ch.Name]; !seen {
					r.Channels[ch.Name] = hclRangeToLSP(block.LabelRanges[0])
				}
			}
		}
		r.walkBody(block.Body, ctx)
	}
}

func (r *AnalysisResult) collectColors(expr hclsyntax.Expression, ctx *hcl.EvalContext) {
	switch e := expr.(type) {
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			r.collectColors(item, ctx)
		}
	case *hclsyntax.FunctionCallExpr:
		if !config.IsColorFunc(e.Name) {
			return
		}
		val, diags := e.Value(ctx)
		if diags.HasErrors() || !val.IsWhollyKnown() || val.Type() != cty.String {
			// config.Parse reports the failure
			return
		}
		if c, err := css.Parse(val.AsString()); err == nil {
			r.Colors = append(r.Colors, ColorLocation{
				Range: hclRangeToLSP(e.Range()),
				Color: c,
				Call:  e.Name,
			})
		}
	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			return
		}
		lit, ok := e.Parts[0].(*hclsyntax.LiteralValueExpr)
		if !ok || lit.Val.Type() != cty.String {
			return
		}
		text := lit.Val.AsString()
		if !looksLikeColor(text) {
			return
		}
		if c, err := css.Parse(text); err == nil {
			r.Colors = append(r.Colors, ColorLocation{
				Range:  hclRangeToLSP(e.Range()),
				Color:  c,
				Quoted: true,
			})
		}
	}
}

// looksLikeColor reports whether a string literal is meant as color text.
// Words like "bad" or "add" are valid hex digits and are not colors here.
func looksLikeColor(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "#") || strings.HasPrefix(s, "oklab(") || strings.HasPrefix(s, "oklch(")
}

var (
	hexRe = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
	fnRe  = regexp.MustCompile(`(?i)\bokl(?:ab|ch)\(`)
)

// scanText finds color literals line by line. Hex colors that fail to parse
// are skipped since #name is common outside colors; a malformed oklab() or
// oklch() call is reported at the offending token.
func (r *AnalysisResult) scanText(content string) {
	for i, line := range splitLines(content) {
		for _, loc := range hexRe.FindAllStringIndex(line, -1) {
			if c, err := css.Parse(line[loc[0]:loc[1]]); err == nil {
				r.Colors = append(r.Colors, ColorLocation{
					Range: lineRange(i, loc[0], loc[1]),
					Color: c,
				})
			}
		}

		for _, loc := range fnRe.FindAllStringIndex(line, -1) {
			end := len(line)
			if j := strings.IndexByte(line[loc[1]:], ')'); j >= 0 {
				end = loc[1] + j + 1
			}
			c, err := css.Parse(line[loc[0]:end])
			if err == nil {
				r.Colors = append(r.Colors, ColorLocation{
					Range: lineRange(i, loc[0], end),
					Color: c,
				})
				continue
			}
			var pe *css.ParseError
			if !errors.As(err, &pe) {
				r.addError(lineRange(i, loc[0], end), err.Error())
				continue
			}
			start := loc[0] + pe.Pos
			stop := min(start+max(len(pe.Token), 1), end)
			r.addError(lineRange(i, start, stop), pe.Kind.String()+": "+pe.Msg)
		}
	}
}

func lineRange(line, start, end int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: uint32(start)},
		End:   protocol.Position{Line: uint32(line), Character: uint32(end)},
	}
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

func (r *AnalysisResult) addError(rng protocol.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}
