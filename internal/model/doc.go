// Package model defines the data structures shared by the scraper.
//
// This package contains the following main types:
//   - RegionRow: One parsed row of a county or municipality table
//   - LeafRow: One street row with its enclosing county and municipality
//   - OutageRecord: The flat entity written as one NDJSON line
//
// The models live in their own package so that the document parser, the
// pipeline and the report writers can share them without import cycles.
package model
