package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/daiict/faculty-finder/internal/browser"
	"github.com/daiict/faculty-finder/internal/config"
	"github.com/daiict/faculty-finder/internal/extract"
	"github.com/daiict/faculty-finder/internal/httpx"
	"github.com/daiict/faculty-finder/internal/observability"
	"github.com/daiict/faculty-finder/internal/scraper"
	"github.com/daiict/faculty-finder/internal/store"
	"github.com/daiict/faculty-finder/internal/urlutil"
)

var errDisallowed = errors.New("disallowed by robots.txt")

// RunResult summarises one pipeline run.
type RunResult struct {
	Listings  int `json:"listings"`
	Harvested int `json:"harvested"`
	Linked    int `json:"linked"`
	Saved     int `json:"saved"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// IngestionService harvests listing pages, deep scrapes every linked profile
// and stores the normalized result. Runs are strictly sequential.
type IngestionService struct {
	store       *store.Store
	openBrowser browser.Factory
	robots      *httpx.RobotsGuard
	markup      *scraper.SimpleNormalizer
	listingURLs []string
	listWait    time.Duration
	settle      time.Duration
	csvPath     string
	jsonPath    string
	logger      *slog.Logger
}

func NewIngestionService(cfg config.Config, st *store.Store, openBrowser browser.Factory, logger *slog.Logger) *IngestionService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &IngestionService{
		store:       st,
		openBrowser: openBrowser,
		markup:      scraper.NewSimpleNormalizer(),
		listingURLs: cfg.ListingURLs,
		listWait:    cfg.ListWait,
		settle:      cfg.SettleDelay,
		csvPath:     cfg.CSVPath,
		jsonPath:    cfg.JSONPath,
		logger:      logger.With("component", "ingestion"),
	}
	if cfg.RespectRobots {
		s.robots = httpx.NewRobotsGuard(cfg.UserAgent)
	}
	return s
}

// Run executes both phases once and exports the store afterwards. Failures
// on individual pages are logged and counted; only setup errors and
// cancellation end a run early. The browser is always released.
func (s *IngestionService) Run(ctx context.Context) (RunResult, error) {
	var res RunResult
	start := time.Now()
	defer func() { observability.ObserveRunDuration(time.Since(start).Seconds()) }()

	if err := s.store.Init(ctx); err != nil {
		observability.IncError(observability.ErrorStore, "ingestion")
		return res, err
	}

	b, err := s.openBrowser(ctx)
	if err != nil {
		return res, fmt.Errorf("start browser: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			s.logger.Warn("browser close failed", "error", err)
		}
	}()

	s.logger.Info("pipeline started: harvesting links", "listings", len(s.listingURLs))
	candidates := s.harvest(ctx, b, &res)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	linked := dedupeLinked(candidates)
	res.Linked = len(linked)
	s.logger.Info("starting deep scrape", "harvested", res.Harvested, "linked", res.Linked)

	for i, person := range linked {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		s.logger.Info("deep scrape", "n", i+1, "of", len(linked), "name", person.Name)

		err := s.scrapeProfile(ctx, b, person)
		switch {
		case err == nil:
			res.Saved++
			observability.IncProfileSaved()
		case errors.Is(err, errDisallowed):
			res.Skipped++
			s.logger.Info("profile skipped", "url", person.URL, "reason", err)
		case ctx.Err() != nil:
			return res, ctx.Err()
		default:
			res.Failed++
			s.logger.Warn("profile failed", "name", person.Name, "url", person.URL, "error", err)
		}
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn("count failed", "error", err)
	}
	s.logger.Info("pipeline finished",
		"saved", res.Saved,
		"failed", res.Failed,
		"skipped", res.Skipped,
		"stored_total", total,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)

	if err := s.store.Export(ctx, s.csvPath, s.jsonPath); err != nil {
		observability.IncError(observability.ErrorStore, "export")
		s.logger.Error("export failed", "error", err)
	} else {
		s.logger.Info("data exported", "csv", s.csvPath, "json", s.jsonPath)
	}
	return res, nil
}

func (s *IngestionService) harvest(ctx context.Context, b browser.Browser, res *RunResult) []scraper.RawProfile {
	var out []scraper.RawProfile
	for _, listingURL := range s.listingURLs {
		if ctx.Err() != nil {
			return out
		}
		logger := s.logger.With("listing", listingURL)
		logger.Info("visiting listing")

		if !s.allowed(ctx, listingURL) {
			logger.Warn("listing disallowed by robots.txt")
			continue
		}
		if err := b.Open(ctx, listingURL); err != nil {
			observability.IncError(observability.ClassifyPageError(err), "harvest")
			logger.Warn("could not open listing", "error", err)
			continue
		}
		if err := b.WaitFor(ctx, scraper.ListContainer, s.listWait); err != nil {
			observability.IncError(observability.ClassifyPageError(err), "harvest")
			logger.Warn("could not load list", "error", err)
			continue
		}
		doc, err := b.Document(ctx)
		if err != nil {
			observability.IncError(observability.ClassifyPageError(err), "harvest")
			logger.Warn("could not read listing", "error", err)
			continue
		}

		pageURL := b.URL()
		if pageURL == "" {
			pageURL = listingURL
		}
		cards := scraper.ParseListing(extract.NewPage(pageURL, doc))
		res.Listings++
		res.Harvested += len(cards)
		observability.IncListingVisited()
		observability.AddProfilesHarvested(len(cards))
		logger.Info("listing harvested", "cards", len(cards))

		out = append(out, cards...)
	}
	return out
}

// dedupeLinked keeps the first card for every distinct profile URL and drops
// cards without a link.
func dedupeLinked(candidates []scraper.RawProfile) []scraper.RawProfile {
	seen := make(map[string]struct{}, len(candidates))
	var out []scraper.RawProfile
	for _, c := range candidates {
		if !c.HasLink() {
			continue
		}
		key := urlutil.Key(c.URL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func (s *IngestionService) scrapeProfile(ctx context.Context, b browser.Browser, person scraper.RawProfile) error {
	if !s.allowed(ctx, person.URL) {
		return errDisallowed
	}
	if err := b.Open(ctx, person.URL); err != nil {
		observability.IncError(observability.ClassifyPageError(err), "deep_scrape")
		return err
	}
	if err := httpx.SleepContext(ctx, s.settle); err != nil {
		return err
	}
	doc, err := b.Document(ctx)
	if err != nil {
		observability.IncError(observability.ClassifyPageError(err), "deep_scrape")
		return err
	}

	page := extract.NewPage(person.URL, doc)
	fields := extract.Profile(page, person.Specialization)
	person.Bio = fields.Bio
	person.Research = fields.Research
	person.Teaching = fields.Teaching
	person.Publications = fields.Publications
	person.Specialization = fields.Specialization
	s.backfillIdentity(&person, page)

	if err := s.store.Upsert(ctx, scraper.CleanProfile(person)); err != nil {
		observability.IncError(observability.ErrorStore, "deep_scrape")
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// backfillIdentity fills listing fields the card did not provide from the
// profile page's schema.org Person block.
func (s *IngestionService) backfillIdentity(person *scraper.RawProfile, page *extract.Page) {
	if person.Name != "Unknown" && person.Name != "" && person.Email != "" && person.Designation != "" {
		return
	}
	ld, ok := extract.PersonFromJSONLD(page)
	if !ok {
		return
	}
	if (person.Name == "Unknown" || person.Name == "") && ld.Name != "" {
		person.Name = s.plain(ld.Name)
	}
	if person.Email == "" {
		person.Email = ld.Email
	}
	if person.Designation == "" {
		person.Designation = s.plain(ld.JobTitle)
	}
}

func (s *IngestionService) plain(v string) string {
	text, err := s.markup.Normalize(v)
	if err != nil {
		s.logger.Debug("markup normalize failed", "value", v, "error", err)
		return v
	}
	return text
}

func (s *IngestionService) allowed(ctx context.Context, rawURL string) bool {
	if s.robots == nil {
		return true
	}
	return s.robots.Allowed(ctx, rawURL)
}
