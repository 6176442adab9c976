// Package document parses portal pages and extracts table data from them.
//
// Pages are parsed with golang.org/x/net/html, which accepts malformed
// markup the same way a browser does, and navigated with goquery using a
// small set of fixed positional selectors: the timestamp line and the first
// four columns of whatever table is on the page.
//
// Two extraction styles are offered. Texts and Attrs return one value per
// match across the whole document, in document order. RegionRows and
// LeafRows apply the same selectors to one table row at a time, so a row
// with a missing cell is reported instead of shifting every later column.
package document
