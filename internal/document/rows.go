package document

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/mepower/internal/model"
)

// LeafCells holds the columns of one street row that are carried into records.
// The second column of a street table is not used.
type LeafCells struct {
	Street      string
	Out         string
	Restoration string
}

// RegionRows parses every table row as a county or municipality row:
// a first-column link (text and href), a second-column total and a
// third-column out count.
//
// Rows without td cells, such as header rows, and rows whose first cell has
// no link, such as a totals row, are not region rows and are ignored. A
// region row that lacks one of the required cells or the href is reported
// as a RowError and left out; the remaining rows are still returned, and all
// row errors are joined.
func (d *Document) RegionRows() ([]model.RegionRow, error) {
	var (
		rows []model.RegionRow
		errs []error
	)

	d.eachDataRow(func(n int, tr *goquery.Selection) {
		link := tr.FindMatcher(FirstColumnLink.sel).First()
		if link.Length() == 0 {
			return
		}
		row, err := regionRow(tr, link)
		if err != nil {
			errs = append(errs, &RowError{Row: n, Err: err})
			return
		}
		rows = append(rows, row)
	})

	return rows, errors.Join(errs...)
}

// LeafRows parses every table row as a street row: first-column name,
// third-column out count and fourth-column restoration estimate.
// Row errors are handled as in RegionRows.
func (d *Document) LeafRows() ([]LeafCells, error) {
	var (
		rows []LeafCells
		errs []error
	)

	d.eachDataRow(func(n int, tr *goquery.Selection) {
		row, err := leafRow(tr)
		if err != nil {
			errs = append(errs, &RowError{Row: n, Err: err})
			return
		}
		rows = append(rows, row)
	})

	return rows, errors.Join(errs...)
}

// eachDataRow calls fn for every tr that has at least one td child.
// n counts only those rows, starting at 1.
func (d *Document) eachDataRow(fn func(n int, tr *goquery.Selection)) {
	n := 0
	d.doc.FindMatcher(tableRow.sel).Each(func(_ int, tr *goquery.Selection) {
		if tr.ChildrenFiltered("td").Length() == 0 {
			return
		}
		n++
		fn(n, tr)
	})
}

func regionRow(tr, link *goquery.Selection) (model.RegionRow, error) {
	href, ok := link.Attr("href")
	if !ok {
		return model.RegionRow{}, &MissingAttributeError{Selector: FirstColumnLink.String(), Attr: "href"}
	}

	total, err := cellText(tr, SecondColumn)
	if err != nil {
		return model.RegionRow{}, err
	}
	out, err := cellText(tr, ThirdColumn)
	if err != nil {
		return model.RegionRow{}, err
	}

	return model.RegionRow{
		Name:  normalizeText(link.Text()),
		Href:  strings.TrimSpace(href),
		Total: total,
		Out:   out,
	}, nil
}

func leafRow(tr *goquery.Selection) (LeafCells, error) {
	street, err := cellText(tr, FirstColumn)
	if err != nil {
		return LeafCells{}, err
	}
	out, err := cellText(tr, ThirdColumn)
	if err != nil {
		return LeafCells{}, err
	}
	restoration, err := cellText(tr, FourthColumn)
	if err != nil {
		return LeafCells{}, err
	}

	return LeafCells{Street: street, Out: out, Restoration: restoration}, nil
}

// cellText returns the text of the cell in tr matching sel.
func cellText(tr *goquery.Selection, sel Selector) (string, error) {
	cell := tr.FindMatcher(sel.sel).First()
	if cell.Length() == 0 {
		return "", &MissingNodeError{Selector: sel.String()}
	}
	return normalizeText(cell.Text()), nil
}
