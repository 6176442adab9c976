// Package pipeline walks the three-level outage report and turns it into records.
//
// The Walker fetches the top-level page, then every county page, then every
// municipality page, and returns the street rows with their ancestors in
// source order. Assemble converts a walk, or the error that ended it, into
// the records to emit. Scraper ties the two together with a clock.
//
// Fan-out at each level runs in an errgroup; every page fetch holds one unit
// of a shared semaphore, so at most Concurrency requests are in flight no
// matter how wide the hierarchy is. Each level writes into its own slot of a
// pre-sized slice, which keeps the output order independent of scheduling.
package pipeline
