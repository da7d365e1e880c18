package config

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

var (
	multipleBlankLines        = regexp.MustCompile(`\n{3,}`)
	blankLineAfterOpenBrace   = regexp.MustCompile(`\{\n\s*\n`)
	blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)
	quotedHex                 = regexp.MustCompile(`"#[0-9A-Fa-f]{3}(?:[0-9A-Fa-f]{3})?"`)
)

// Format returns settings source in canonical style: hclwrite layout, one
// blank line around each channel and history block, none just inside
// braces, and lowercase hex colors.
//
// The formatter works on partial or invalid HCL, so it can run while the
// user is still typing. Blocks are only separated once the file parses.
func Format(content string) (string, error) {
	formatted := separateBlocks(string(hclwrite.Format([]byte(content))))
	collapsed := multipleBlankLines.ReplaceAllString(formatted, "\n\n")
	collapsed = blankLineAfterOpenBrace.ReplaceAllString(collapsed, "{\n")
	collapsed = blankLineBeforeCloseBrace.ReplaceAllString(collapsed, "\n${1}")
	collapsed = quotedHex.ReplaceAllStringFunc(collapsed, strings.ToLower)
	return collapsed, nil
}

// Check formats content and reports whether formatting changed it.
func Check(content string) (string, bool) {
	formatted, _ := Format(content)
	return formatted, formatted != content
}

// separateBlocks inserts a blank line between a top-level block and an
// item on the line right above or below it.
func separateBlocks(src string) string {
	file, diags := hclsyntax.ParseConfig([]byte(src), FileName, hcl.InitialPos)
	if diags.HasErrors() {
		return src
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return src
	}

	type item struct {
		rng   hcl.Range
		block bool
	}
	var items []item
	for _, attr := range body.Attributes {
		items = append(items, item{rng: attr.SrcRange})
	}
	for _, b := range body.Blocks {
		items = append(items, item{rng: b.Range(), block: true})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].rng.Start.Byte < items[j].rng.Start.Byte
	})

	lines := strings.Split(src, "\n")
	// walk backwards so earlier line numbers stay valid
	for i := len(items) - 1; i > 0; i-- {
		prev, next := items[i-1], items[i]
		if !prev.block && !next.block {
			continue
		}
		if next.rng.Start.Line != prev.rng.End.Line+1 {
			continue
		}
		at := next.rng.Start.Line - 1
		lines = append(lines[:at], append([]string{""}, lines[at:]...)...)
	}
	return strings.Join(lines, "\n")
}
