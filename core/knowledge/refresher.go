package knowledge

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"vesta/config"
	"vesta/core/store"
	"vesta/core/utils"
)

// Refresher promotes knowledge base sources out of the "crawling" state once
// their indexing window has elapsed. Sources enter crawling when a user adds
// them; a cron-driven sweep moves them to active so the UI settles without
// the user reloading anything.
type Refresher struct {
	sources store.KnowledgeStore
	cfg     config.KnowledgeConfig
	logger  *utils.Logger

	cron *cron.Cron
	now  func() time.Time
}

func NewRefresher(sources store.KnowledgeStore, cfg config.KnowledgeConfig, logger *utils.Logger) *Refresher {
	return &Refresher{
		sources: sources,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Start registers the sweep on the configured cron schedule and runs one
// immediate pass so sources added before a restart are not stuck crawling.
func (r *Refresher) Start(ctx context.Context) error {
	r.cron = cron.New()
	spec := r.cfg.RefreshSpec
	if spec == "" {
		spec = "@every 1m"
	}
	if _, err := r.cron.AddFunc(spec, func() {
		if err := r.Sweep(ctx); err != nil {
			r.logger.Errorf("knowledge sweep: %v", err)
		}
	}); err != nil {
		return err
	}
	r.cron.Start()
	go func() {
		if err := r.Sweep(ctx); err != nil {
			r.logger.Errorf("knowledge sweep: %v", err)
		}
	}()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

// Sweep promotes every crawling source whose delay has elapsed. Promotions
// are independent, so they run concurrently; the first store error wins.
func (r *Refresher) Sweep(ctx context.Context) error {
	crawling, err := r.sources.ListByStatus(ctx, store.SourceCrawling)
	if err != nil {
		return err
	}
	cutoff := r.now().Add(-r.crawlDelay())
	g, gctx := errgroup.WithContext(ctx)
	for _, src := range crawling {
		if src.AddedAt.After(cutoff) {
			continue
		}
		src := src
		g.Go(func() error {
			if err := r.sources.SetStatus(gctx, src.ID, store.SourceActive); err != nil {
				return err
			}
			r.logger.Printf("knowledge source indexed: %s", src.URL)
			return nil
		})
	}
	return g.Wait()
}

func (r *Refresher) crawlDelay() time.Duration {
	if r.cfg.CrawlDelay > 0 {
		return r.cfg.CrawlDelay
	}
	return 2500 * time.Millisecond
}
