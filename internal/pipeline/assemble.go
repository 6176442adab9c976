package pipeline

import (
	"errors"
	"time"

	"github.com/nao1215/mepower/internal/model"
)

// Assemble turns the outcome of Walk into the records to emit.
//
//   - ErrNoOutageData yields one "No outage data found." record carrying the
//     portal timestamp.
//   - Any other error yields one "Scraping Error" record stamped with now.
//   - Otherwise every street row becomes a normal record and every reported
//     branch failure becomes a diagnostic record, in walk order.
func Assemble(walk *Walk, err error, now time.Time) []model.OutageRecord {
	switch {
	case errors.Is(err, ErrNoOutageData):
		update := ""
		if walk != nil {
			update = walk.Update
		}
		return []model.OutageRecord{model.NewEmptyRecord(update)}
	case err != nil, walk == nil:
		return []model.OutageRecord{model.NewScrapeErrorRecord(now)}
	}

	records := make([]model.OutageRecord, 0, len(walk.Items))
	for _, it := range walk.Items {
		switch {
		case it.Leaf != nil:
			records = append(records, model.NewLeafRecord(*it.Leaf))
		case it.Failure != nil:
			records = append(records, model.NewBranchErrorRecord(
				walk.Update, it.Failure.Region, it.Failure.SubRegion, it.Failure.Err,
			))
		}
	}
	return records
}
