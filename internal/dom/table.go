// Package dom holds the rendered table body as an HTML tree.
// Filtering and delete binding read this tree, not the books it was rendered from.
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const hiddenStyle = "display: none"

// Row is the visible text of one rendered row.
type Row struct {
	Title  string
	Author string
}

// Table is the results table body.
type Table struct {
	body *goquery.Selection
}

func NewTable() *Table {
	t := &Table{}
	_ = t.Replace("")
	return t
}

// Replace throws away every row and parses body as the new content.
func (t *Table) Replace(body string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table><tbody>" + body + "</tbody></table>"))
	if err != nil {
		return fmt.Errorf("parse table body: %w", err)
	}
	t.body = doc.Find("tbody").First()
	return nil
}

func (t *Table) rows() *goquery.Selection {
	return t.body.ChildrenFiltered("tr")
}

// Len is the number of rendered rows, hidden or not.
func (t *Table) Len() int {
	return t.rows().Length()
}

// Rows returns the text content of the title and author cells of each row.
func (t *Table) Rows() []Row {
	var rows []Row
	t.rows().Each(func(_ int, s *goquery.Selection) {
		cells := s.ChildrenFiltered("td")
		rows = append(rows, Row{
			Title:  cells.Eq(0).Text(),
			Author: cells.Eq(1).Text(),
		})
	})
	return rows
}

// SetVisible shows or hides row i. Out of range indexes are ignored.
func (t *Table) SetVisible(i int, visible bool) {
	row := t.rows().Eq(i)
	if visible {
		row.RemoveAttr("style")
		return
	}
	row.SetAttr("style", hiddenStyle)
}

// DeleteIDs reads the data-id of every delete control, in row order.
func (t *Table) DeleteIDs() []string {
	var ids []string
	t.body.Find("button.delete-btn").Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("data-id"); ok {
			ids = append(ids, id)
		}
	})
	return ids
}

// HTML serializes the rows for the page shell.
func (t *Table) HTML() string {
	out, err := t.body.Html()
	if err != nil {
		return ""
	}
	return out
}
