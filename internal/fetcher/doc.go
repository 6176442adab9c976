// Package fetcher retrieves portal pages over HTTP.
//
// The Fetcher interface is the network boundary of the scraper. Client is
// the production implementation built on resty; Fixture serves canned pages
// from memory so the rest of the pipeline can be exercised offline.
//
// # Usage
//
//	client := fetcher.New(fetcher.WithUserAgent(ua))
//	body, err := client.Fetch(ctx, "https://ecmp.cmpco.com/OutageReports/CMP.html")
//	if errors.Is(err, fetcher.ErrNetwork) {
//		// portal unreachable
//	}
package fetcher
