// Package dashboard loads the data behind the signed-in landing page. Each
// panel is fetched independently; one failing panel shows a banner while
// the others still render.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobdesk/internal/api"
	"github.com/jonathan/jobdesk/internal/tracker"
	"github.com/jonathan/jobdesk/internal/types"
)

// Panel names.
const (
	PanelProfile = "profile"
	PanelPlan    = "plan"
	PanelCVs     = "cvs"
	PanelJobs    = "jobs"
)

// BannerKind is the severity of a banner.
type BannerKind string

const (
	BannerError   BannerKind = "error"
	BannerWarning BannerKind = "warning"
	BannerInfo    BannerKind = "info"
)

// Banner is a message shown above a panel.
type Banner struct {
	Panel       string     `json:"panel"`
	Kind        BannerKind `json:"kind"`
	Message     string     `json:"message"`
	Dismissible bool       `json:"dismissible"`
}

// Sources fetches each panel. FromClient wires them to the API.
type Sources struct {
	Profile func(ctx context.Context) (*types.UserProfile, error)
	Plan    func(ctx context.Context) (*types.CurrentPlan, error)
	CVs     func(ctx context.Context) ([]types.CVSummary, error)
	Jobs    func(ctx context.Context) ([]types.Job, error)
}

// FromClient returns Sources backed by c.
func FromClient(c *api.Client) Sources {
	return Sources{
		Profile: c.Users().Profile,
		Plan:    c.Billing().Plan,
		CVs:     c.CV().List,
		Jobs:    c.Jobs().List,
	}
}

// Stats are the headline numbers.
type Stats struct {
	CVCount      int `json:"cv_count"`
	AverageATS   int `json:"average_ats"`
	Applications int `json:"applications"`
	Interviews   int `json:"interviews"`
	Offers       int `json:"offers"`
}

// Page is everything the dashboard shows. Panels that failed are nil.
type Page struct {
	Profile *types.UserProfile `json:"profile,omitempty"`
	Plan    *types.CurrentPlan `json:"plan,omitempty"`
	CVs     []types.CVSummary  `json:"cvs,omitempty"`
	Jobs    []types.Job        `json:"jobs,omitempty"`
	Stats   Stats              `json:"stats"`
	Banners []Banner           `json:"banners,omitempty"`

	// Board is built from Jobs. Empty when the jobs panel failed.
	Board *tracker.Board `json:"-"`
}

// creditWarningRatio is the share of credits used that triggers a warning.
const creditWarningRatio = 0.8

// Load fetches every panel concurrently. It only returns an error when ctx
// is done; panel failures become banners.
func Load(ctx context.Context, src Sources) (*Page, error) {
	page := &Page{}
	var mu sync.Mutex
	fail := func(panel string, err error, fallback string) {
		mu.Lock()
		defer mu.Unlock()
		page.Banners = append(page.Banners, Banner{
			Panel:       panel,
			Kind:        BannerError,
			Message:     api.UserMessage(err, fallback),
			Dismissible: true,
		})
	}

	var g errgroup.Group
	if src.Profile != nil {
		g.Go(func() error {
			profile, err := src.Profile(ctx)
			if err != nil {
				fail(PanelProfile, err, "Could not load your profile.")
				return nil
			}
			mu.Lock()
			page.Profile = profile
			mu.Unlock()
			return nil
		})
	}
	if src.Plan != nil {
		g.Go(func() error {
			plan, err := src.Plan(ctx)
			if err != nil {
				fail(PanelPlan, err, "Could not load your plan.")
				return nil
			}
			mu.Lock()
			page.Plan = plan
			mu.Unlock()
			return nil
		})
	}
	if src.CVs != nil {
		g.Go(func() error {
			cvs, err := src.CVs(ctx)
			if err != nil {
				fail(PanelCVs, err, "Could not load your CVs.")
				return nil
			}
			mu.Lock()
			page.CVs = cvs
			mu.Unlock()
			return nil
		})
	}
	if src.Jobs != nil {
		g.Go(func() error {
			jobs, err := src.Jobs(ctx)
			if err != nil {
				fail(PanelJobs, err, "Could not load your applications.")
				return nil
			}
			mu.Lock()
			page.Jobs = jobs
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dashboard load interrupted: %w", err)
	}

	page.Board = tracker.NewBoard(page.Jobs)
	page.Stats = computeStats(page.CVs, page.Jobs)
	page.Banners = append(page.Banners, advisories(page)...)
	sortBanners(page.Banners)
	return page, nil
}

func computeStats(cvs []types.CVSummary, jobs []types.Job) Stats {
	stats := Stats{CVCount: len(cvs)}
	var scored, total int
	for _, cv := range cvs {
		if cv.ATSScore != nil {
			scored++
			total += *cv.ATSScore
		}
	}
	if scored > 0 {
		stats.AverageATS = total / scored
	}
	for _, job := range jobs {
		switch job.Stage {
		case types.StageApplied:
			stats.Applications++
		case types.StageInterview:
			stats.Applications++
			stats.Interviews++
		case types.StageOffer:
			stats.Applications++
			stats.Interviews++
			stats.Offers++
		case types.StageRejected:
			stats.Applications++
		}
	}
	return stats
}

// advisories are banners derived from loaded data rather than failures.
func advisories(page *Page) []Banner {
	var out []Banner
	if plan := page.Plan; plan != nil && plan.CreditsLimit > 0 {
		used := float64(plan.CreditsUsed) / float64(plan.CreditsLimit)
		switch {
		case plan.CreditsUsed >= plan.CreditsLimit:
			out = append(out, Banner{
				Panel:   PanelPlan,
				Kind:    BannerWarning,
				Message: "You have used all AI credits for this period. Upgrade to keep generating.",
			})
		case used >= creditWarningRatio:
			out = append(out, Banner{
				Panel:       PanelPlan,
				Kind:        BannerWarning,
				Message:     fmt.Sprintf("You have used %d of %d AI credits this period.", plan.CreditsUsed, plan.CreditsLimit),
				Dismissible: true,
			})
		}
	}
	if page.CVs != nil && len(page.CVs) == 0 {
		out = append(out, Banner{
			Panel:       PanelCVs,
			Kind:        BannerInfo,
			Message:     "Create your first CV to start tailoring applications.",
			Dismissible: true,
		})
	}
	return out
}

var kindOrder = map[BannerKind]int{BannerError: 0, BannerWarning: 1, BannerInfo: 2}

var panelOrder = map[string]int{PanelProfile: 0, PanelPlan: 1, PanelCVs: 2, PanelJobs: 3}

// sortBanners orders banners by severity, then panel, so output does not
// depend on which fetch finished first.
func sortBanners(banners []Banner) {
	sort.SliceStable(banners, func(i, j int) bool {
		a, b := banners[i], banners[j]
		if kindOrder[a.Kind] != kindOrder[b.Kind] {
			return kindOrder[a.Kind] < kindOrder[b.Kind]
		}
		return panelOrder[a.Panel] < panelOrder[b.Panel]
	})
}

// Dismiss removes the dismissible banners of panel.
func (p *Page) Dismiss(panel string) {
	kept := p.Banners[:0]
	for _, b := range p.Banners {
		if b.Panel == panel && b.Dismissible {
			continue
		}
		kept = append(kept, b)
	}
	p.Banners = kept
}
