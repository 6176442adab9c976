package model

// RegionRow is one row of a county or municipality table.
// The four fields come from the first four columns of the row: the link text,
// the link target, the total customer count and the affected customer count.
type RegionRow struct {
	// Name is the text of the first-column link, as it appears on the page.
	Name string

	// Href is the relative path of the next page down in the hierarchy.
	Href string

	// Total is the total number of customers served.
	Total string

	// Out is the number of customers currently without power.
	Out string
}

// LeafRow is one street row together with its ancestor context.
// It is produced by the hierarchy walker and consumed by the record assembler.
type LeafRow struct {
	// Update is the portal timestamp shared by every row of a run.
	Update string

	// Region is the enclosing county row.
	Region RegionRow

	// SubRegion is the enclosing municipality row.
	SubRegion RegionRow

	// Street is the leaf location name.
	Street string

	// Out is the number of affected customers on the street.
	Out string

	// Restoration is the estimated restoration text, copied verbatim.
	Restoration string
}
