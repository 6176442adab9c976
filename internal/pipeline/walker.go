package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nao1215/mepower/internal/document"
	"github.com/nao1215/mepower/internal/fetcher"
	"github.com/nao1215/mepower/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// TopLevelPage is the page, relative to the portal base, that lists counties.
const TopLevelPage = "CMP.html"

// DefaultConcurrency is the number of page fetches allowed in flight.
const DefaultConcurrency = 4

// Item is one entry of a walk: either a street row or, under BranchReport,
// a branch that failed.
type Item struct {
	Leaf    *model.LeafRow
	Failure *BranchError
}

// Walk is the result of a successful walk.
type Walk struct {
	// Update is the portal timestamp.
	Update string

	// Items are in source order: county, then municipality, then street.
	Items []Item
}

// leaves returns the street rows of the walk, skipping failures.
func (w *Walk) leaves() []model.LeafRow {
	leaves := make([]model.LeafRow, 0, len(w.Items))
	for _, it := range w.Items {
		if it.Leaf != nil {
			leaves = append(leaves, *it.Leaf)
		}
	}
	return leaves
}

// Walker descends the report hierarchy.
type Walker struct {
	fetcher     fetcher.Fetcher
	baseURL     string
	concurrency int
	policy      BranchPolicy
	logger      *slog.Logger

	sem   *semaphore.Weighted
	pages atomic.Int64
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithConcurrency sets how many pages may be fetched at once.
// 1 fetches strictly one page after another. Non-positive values are ignored.
func WithConcurrency(n int) WalkerOption {
	return func(w *Walker) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// WithBranchPolicy sets how county and municipality failures are handled.
func WithBranchPolicy(p BranchPolicy) WalkerOption {
	return func(w *Walker) {
		if p != "" {
			w.policy = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// NewWalker creates a Walker that fetches pages under baseURL with f.
func NewWalker(f fetcher.Fetcher, baseURL string, opts ...WalkerOption) *Walker {
	w := &Walker{
		fetcher:     f,
		baseURL:     strings.TrimRight(baseURL, "/"),
		concurrency: DefaultConcurrency,
		policy:      DefaultBranchPolicy,
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = slog.Default()
	}
	w.sem = semaphore.NewWeighted(int64(w.concurrency))

	return w
}

// Walk scrapes the whole report.
//
// It returns the top-level fetch error, or a document.MissingNodeError when
// the top-level page has no timestamp. When the county table has no rows at
// all it returns a Walk holding only the update time, together with
// ErrNoOutageData. Malformed county rows are logged and skipped, unless the
// policy is BranchAbort or no well-formed row is left, in which case their
// *document.RowError is returned. Under BranchAbort the first branch failure
// is returned as a *BranchError.
func (w *Walker) Walk(ctx context.Context) (*Walk, error) {
	start := time.Now()
	w.pages.Store(0)

	w.logger.Info("walking portal",
		"base", w.baseURL,
		"concurrency", w.concurrency,
		"policy", w.policy,
	)

	doc, err := w.load(ctx, TopLevelPage)
	if err != nil {
		return nil, err
	}

	update, err := doc.Timestamp()
	if err != nil {
		return nil, err
	}

	regions, rowErr := doc.RegionRows()
	switch {
	case rowErr != nil && (w.policy == BranchAbort || len(regions) == 0):
		return nil, rowErr
	case rowErr != nil:
		w.logger.Warn("skipping malformed county rows", "error", rowErr)
	case len(regions) == 0:
		return &Walk{Update: update}, ErrNoOutageData
	}

	items, err := w.walkRegions(ctx, update, regions)
	if err != nil {
		return nil, err
	}

	walk := &Walk{Update: update, Items: items}
	streets := len(walk.leaves())
	w.logger.Info("walk complete",
		"update", update,
		"counties", len(regions),
		"streets", streets,
		"failures", len(items)-streets,
		"pages", w.pages.Load(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return walk, nil
}

// walkRegions visits every county and concatenates the results in order.
func (w *Walker) walkRegions(ctx context.Context, update string, regions []model.RegionRow) ([]Item, error) {
	slots := make([][]Item, len(regions))

	g, ctx := errgroup.WithContext(ctx)
	for i, region := range regions {
		g.Go(func() error {
			items, err := w.walkRegion(ctx, update, region)
			if err != nil {
				return err
			}
			slots[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return flatten(slots), nil
}

// walkRegion visits one county page and every municipality under it.
func (w *Walker) walkRegion(ctx context.Context, update string, region model.RegionRow) ([]Item, error) {
	doc, err := w.load(ctx, region.Href)
	if err != nil {
		return w.branchFailed(ctx, region, nil, err)
	}

	subRegions, rowErr := doc.RegionRows()
	slots := make([][]Item, len(subRegions))

	g, gctx := errgroup.WithContext(ctx)
	for i, sub := range subRegions {
		g.Go(func() error {
			items, err := w.walkSubRegion(gctx, update, region, sub)
			if err != nil {
				return err
			}
			slots[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := flatten(slots)
	if rowErr != nil {
		failed, err := w.branchFailed(ctx, region, nil, rowErr)
		if err != nil {
			return nil, err
		}
		items = append(items, failed...)
	}
	return items, nil
}

// walkSubRegion visits one municipality page and turns its streets into leaf rows.
func (w *Walker) walkSubRegion(ctx context.Context, update string, region, sub model.RegionRow) ([]Item, error) {
	doc, err := w.load(ctx, sub.Href)
	if err != nil {
		return w.branchFailed(ctx, region, &sub, err)
	}

	streets, rowErr := doc.LeafRows()
	items := make([]Item, 0, len(streets))
	for _, street := range streets {
		items = append(items, Item{Leaf: &model.LeafRow{
			Update:      update,
			Region:      region,
			SubRegion:   sub,
			Street:      street.Street,
			Out:         street.Out,
			Restoration: street.Restoration,
		}})
	}

	if rowErr != nil {
		failed, err := w.branchFailed(ctx, region, &sub, rowErr)
		if err != nil {
			return nil, err
		}
		items = append(items, failed...)
	}
	return items, nil
}

// branchFailed applies the branch policy to a failure under region/sub.
// A cancelled context always ends the walk.
func (w *Walker) branchFailed(ctx context.Context, region model.RegionRow, sub *model.RegionRow, cause error) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	be := &BranchError{Region: region, SubRegion: sub, Err: cause}
	if w.policy == BranchAbort {
		return nil, be
	}

	w.logger.Warn("skipping branch", "error", be)

	if w.policy == BranchReport {
		return []Item{{Failure: be}}, nil
	}
	return nil, nil
}

// load fetches and parses one page, holding a semaphore slot for the fetch.
func (w *Walker) load(ctx context.Context, href string) (*document.Document, error) {
	target := w.resolve(href)

	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	body, err := w.fetcher.Fetch(ctx, target)
	w.sem.Release(1)
	if err != nil {
		return nil, err
	}

	w.pages.Add(1)
	w.logger.Debug("loaded page", "url", target)

	return document.Parse(body), nil
}

// resolve joins href to the portal base. Absolute hrefs are used as they are.
func (w *Walker) resolve(href string) string {
	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return href
	}
	return w.baseURL + "/" + strings.TrimLeft(href, "/")
}

func flatten(slots [][]Item) []Item {
	n := 0
	for _, s := range slots {
		n += len(s)
	}
	out := make([]Item, 0, n)
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}
