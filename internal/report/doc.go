// Package report writes outage records.
//
//   - NDJSONWriter: one compact JSON object per line, the default output
//   - MarkdownWriter: a GitHub-flavored table for reading by people
//
// Writers implement the Writer interface and are selected by name with New.
package report
