package tablescrape

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTableSelector matches the stat tables on wiki pages.
const DefaultTableSelector = "table.wikitable"

// FromHTML parses an HTML page and returns the body rows of every table
// matching selector. An empty selector uses DefaultTableSelector.
func FromHTML(r io.Reader, selector string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return FromSelection(doc.Selection, selector), nil
}

// FromSelection builds a Document from an already parsed page.
func FromSelection(root *goquery.Selection, selector string) Document {
	if selector == "" {
		selector = DefaultTableSelector
	}

	var out Document
	root.Find(selector).Each(func(_ int, tbl *goquery.Selection) {
		var table Table
		tbl.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
			table = append(table, readRow(tr))
		})
		out = append(out, table)
	})
	return out
}

func readRow(tr *goquery.Selection) Row {
	var row Row
	tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
		c := Cell{
			Text:   strings.TrimSpace(td.Text()),
			Header: goquery.NodeName(td) == "th",
		}
		if title, ok := td.Find("a[title]").First().Attr("title"); ok {
			c.AnchorTitle = strings.TrimSpace(title)
		}
		c.AnchorText = strings.TrimSpace(td.Find("a").First().Text())
		row = append(row, c)
	})
	return row
}
