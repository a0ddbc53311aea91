// Package table builds and reshapes the line-item section of an invoice. The
// author controls the table's HTML, not the engine: Restructure takes
// whatever table structure was drawn in the designer, locates the
// {{items_rows}} marker, and splices generated rows in as real siblings so
// row/column semantics stay valid for print and PDF rasterisation. The
// transform is pure: it parses into a detached fragment and returns a
// string, so it is testable without a live document.
package table

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-invoicegen/internal/tokens"
)

// ErrMissingMarker reports that the markup contains no {{items_rows}}
// marker. Callers fall back to the built-in table instead of failing.
var ErrMissingMarker = errors.New("table: items_rows marker not found")

// ErrMarkerOutsideTable reports a marker that is not inside any table
// section, so generated rows have no valid home.
var ErrMarkerOutsideTable = errors.New("table: items_rows marker outside a table")

const markerComment = "invoicegen:items-rows"

// Restructure rewrites author table markup so the generated rows replace the
// {{items_rows}} marker as siblings inside the nearest table section, and
// totals cells (identified by the reserved financial tokens, which must still
// be unresolved at this point) are right-aligned and column-matched against
// the header row. On any sentinel error the original markup is returned
// untouched so the caller can fall back.
func Restructure(tableMarkup, rowsMarkup string) (string, error) {
	if !strings.Contains(tableMarkup, tokens.ItemsRows) {
		return tableMarkup, ErrMissingMarker
	}

	// The marker survives tree construction only as a comment: bare text
	// inside a table would be foster-parented out of it by the HTML5
	// parsing algorithm.
	pre := strings.ReplaceAll(tableMarkup, tokens.ItemsRows, "<!--"+markerComment+"-->")

	doc, err := html.Parse(strings.NewReader(pre))
	if err != nil {
		return tableMarkup, fmt.Errorf("table: parse template: %w", err)
	}
	body := findElement(doc, atom.Body)
	if body == nil {
		return tableMarkup, ErrMarkerOutsideTable
	}

	markers := findComments(body, markerComment)
	if len(markers) == 0 {
		return tableMarkup, ErrMissingMarker
	}

	rows, err := parseRows(rowsMarkup)
	if err != nil {
		return tableMarkup, fmt.Errorf("table: parse rows: %w", err)
	}

	if err := spliceRows(markers[0], rows); err != nil {
		return tableMarkup, err
	}
	// A template is expected to carry the marker once; any duplicates are
	// dropped rather than duplicating the item rows.
	for _, stray := range markers[1:] {
		stray.Parent.RemoveChild(stray)
	}

	for _, tbl := range findElements(body, atom.Table) {
		alignTotals(tbl)
	}

	return renderChildren(body)
}

// spliceRows inserts the row nodes as siblings where the marker sits. The
// marker may live directly in a table section or inside a cell of a
// marker-only row; either way the rows end up as children of the section.
func spliceRows(marker *html.Node, rows []*html.Node) error {
	section := ancestorSection(marker)
	if section == nil {
		return ErrMarkerOutsideTable
	}

	// Walk up from the marker to the section's direct child the marker
	// lives under (usually the tr that held the placeholder).
	anchor := marker
	for anchor.Parent != section {
		anchor = anchor.Parent
	}

	for _, row := range rows {
		section.InsertBefore(row, anchor)
	}

	if anchor == marker {
		section.RemoveChild(marker)
		return nil
	}
	marker.Parent.RemoveChild(marker)
	if strings.TrimSpace(textContent(anchor)) == "" {
		// The placeholder row carried nothing else; drop it.
		section.RemoveChild(anchor)
	}
	return nil
}

func parseRows(rowsMarkup string) ([]*html.Node, error) {
	if strings.TrimSpace(rowsMarkup) == "" {
		return nil, nil
	}
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "tbody",
		DataAtom: atom.Tbody,
	}
	return html.ParseFragment(strings.NewReader(rowsMarkup), ctx)
}

// alignTotals enforces right alignment and header-matched column spans on
// rows whose cells still carry reserved financial tokens. A table with no
// header columns is left untouched.
func alignTotals(tbl *html.Node) {
	headerCols := headerColumnCount(tbl)
	if headerCols == 0 {
		return
	}

	for _, tr := range findElements(tbl, atom.Tr) {
		cells := childCells(tr)
		if len(cells) == 0 {
			continue
		}
		hasTotals := false
		for _, cell := range cells {
			if containsFinancialToken(cell) {
				hasTotals = true
				forceRightAlign(cell)
			}
		}
		if !hasTotals {
			continue
		}
		// Pad the label cell so the value cells land under the trailing
		// header columns no matter how many columns the author drew.
		if len(cells) >= 2 && len(cells) < headerCols {
			span := headerCols - len(cells) + 1
			setAttr(cells[0], "colspan", strconv.Itoa(span))
		}
	}
}

// headerColumnCount sums the cell spans of the table's first row.
func headerColumnCount(tbl *html.Node) int {
	for _, tr := range findElements(tbl, atom.Tr) {
		cells := childCells(tr)
		if len(cells) == 0 {
			continue
		}
		count := 0
		for _, cell := range cells {
			span := 1
			if raw := getAttr(cell, "colspan"); raw != "" {
				if parsed, err := strconv.Atoi(raw); err == nil && parsed > 1 {
					span = parsed
				}
			}
			count += span
		}
		return count
	}
	return 0
}

func containsFinancialToken(cell *html.Node) bool {
	text := textContent(cell)
	for _, token := range tokens.Financial {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

var textAlignPattern = regexp.MustCompile(`(?i)text-align:\s*[^;]+;?`)

func forceRightAlign(cell *html.Node) {
	style := getAttr(cell, "style")
	style = strings.TrimSpace(textAlignPattern.ReplaceAllString(style, ""))
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	if style != "" {
		style += " "
	}
	setAttr(cell, "style", style+"text-align: right;")
}

// ancestorSection climbs to the nearest thead/tbody/tfoot ancestor.
func ancestorSection(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		switch p.DataAtom {
		case atom.Tbody, atom.Thead, atom.Tfoot:
			return p
		}
	}
	return nil
}

func childCells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Td || c.DataAtom == atom.Th {
			cells = append(cells, c)
		}
	}
	return cells
}

func findElement(root *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

func findElements(root *html.Node, a atom.Atom) []*html.Node {
	var found []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = append(found, n)
		}
		return true
	})
	return found
}

func findComments(root *html.Node, data string) []*html.Node {
	var found []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.CommentNode && strings.TrimSpace(n.Data) == data {
			found = append(found, n)
		}
		return true
	})
	return found
}

// walk visits root and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func renderChildren(parent *html.Node) (string, error) {
	var b strings.Builder
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("table: render: %w", err)
		}
	}
	return b.String(), nil
}
