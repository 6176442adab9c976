package model

import (
	"fmt"
	"time"
)

// Messages carried by synthetic records.
const (
	// MessageScrapingError marks a run whose top-level page could not be
	// fetched or did not have the expected shape.
	MessageScrapingError = "Scraping Error"

	// MessageNoOutageData marks a run whose top-level table has no rows.
	MessageNoOutageData = "No outage data found."
)

// ErrorTimeLayout is the layout of outage_update when the portal timestamp is
// unavailable and the current time is used instead (e.g. "Oct 11, 2022 00:40:00").
const ErrorTimeLayout = "Jan _2, 2006 15:04:05"

// OutageRecord is the flat, street-level entity written as one line of NDJSON.
// Location fields are pointers so that synthetic records can leave them out
// entirely; a normal record sets every field and an empty Message.
type OutageRecord struct {
	OutageUpdate      string  `json:"outage_update"`
	County            *string `json:"county,omitempty"`
	CountyTotal       *string `json:"county_total,omitempty"`
	CountyOut         *string `json:"county_out,omitempty"`
	Muni              *string `json:"muni,omitempty"`
	MuniTotal         *string `json:"muni_total,omitempty"`
	MuniOut           *string `json:"muni_out,omitempty"`
	Street            *string `json:"street,omitempty"`
	StreetOut         *string `json:"street_out,omitempty"`
	StreetRestoration *string `json:"street_restoration,omitempty"`
	Message           string  `json:"message"`
}

// NewLeafRecord builds a normal record from a leaf row.
// County, municipality and street names are title-cased; counts and the
// restoration estimate are copied verbatim.
func NewLeafRecord(row LeafRow) OutageRecord {
	return OutageRecord{
		OutageUpdate:      row.Update,
		County:            ptr(TitleCase(row.Region.Name)),
		CountyTotal:       ptr(row.Region.Total),
		CountyOut:         ptr(row.Region.Out),
		Muni:              ptr(TitleCase(row.SubRegion.Name)),
		MuniTotal:         ptr(row.SubRegion.Total),
		MuniOut:           ptr(row.SubRegion.Out),
		Street:            ptr(TitleCase(row.Street)),
		StreetOut:         ptr(row.Out),
		StreetRestoration: ptr(row.Restoration),
		Message:           "",
	}
}

// NewEmptyRecord builds the single record emitted when the portal reports no outages.
func NewEmptyRecord(update string) OutageRecord {
	return OutageRecord{
		OutageUpdate: update,
		Message:      MessageNoOutageData,
	}
}

// NewScrapeErrorRecord builds the single record emitted when the portal
// cannot be scraped. The portal timestamp is unknown, so now is used.
func NewScrapeErrorRecord(now time.Time) OutageRecord {
	return OutageRecord{
		OutageUpdate: now.UTC().Format(ErrorTimeLayout),
		Message:      MessageScrapingError,
	}
}

// NewBranchErrorRecord builds a diagnostic record for one region or
// sub-region that could not be scraped. Only the ancestor fields that are
// known are set; subRegion is nil when the county page itself failed.
func NewBranchErrorRecord(update string, region RegionRow, subRegion *RegionRow, cause error) OutageRecord {
	rec := OutageRecord{
		OutageUpdate: update,
		County:       ptr(TitleCase(region.Name)),
		CountyTotal:  ptr(region.Total),
		CountyOut:    ptr(region.Out),
		Message:      fmt.Sprintf("%s: %v", MessageScrapingError, cause),
	}
	if subRegion != nil {
		rec.Muni = ptr(TitleCase(subRegion.Name))
		rec.MuniTotal = ptr(subRegion.Total)
		rec.MuniOut = ptr(subRegion.Out)
	}
	return rec
}

// IsDiagnostic reports whether the record describes a failure or an empty
// result rather than a street outage.
func (r OutageRecord) IsDiagnostic() bool {
	return r.Message != ""
}

func ptr(s string) *string {
	return &s
}
