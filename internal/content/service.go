package content

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/farmvest/farmvest/internal/farm"
)

// Service serves public site content and platform overview stats.
type Service struct {
	repo  Repository
	farms farm.Repository
}

// NewService builds a content service instance.
func NewService(repo Repository, farms farm.Repository) *Service {
	return &Service{repo: repo, farms: farms}
}

// FAQs returns all FAQ entries.
func (s *Service) FAQs(ctx context.Context) ([]FAQ, error) {
	return s.repo.ListFAQs(ctx)
}

// Page returns the page for the slug, or a placeholder when it does not exist.
func (s *Service) Page(ctx context.Context, slug string) (Page, error) {
	page, err := s.repo.GetPage(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return Page{Slug: slug, Title: "Page", BodyMD: "Content coming soon."}, nil
		}
		return Page{}, err
	}
	return page, nil
}

// Overview summarises platform activity for the public landing page.
type Overview struct {
	BatchesEgg     int64
	BatchesChicken int64
	Highlights     []string
}

// Overview returns batch counts by product type plus marketing highlights.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	eggs, err := s.farms.CountBatchesByType(ctx, farm.ProductEgg)
	if err != nil {
		return Overview{}, err
	}
	chicken, err := s.farms.CountBatchesByType(ctx, farm.ProductChicken)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		BatchesEgg:     eggs,
		BatchesChicken: chicken,
		Highlights: []string{
			"Transparent returns with live batch tracking",
			"Short cycles on broilers; monthly yields on layers",
			"Escrowed funds and clear governance (demo)",
		},
	}, nil
}

// Seed inserts demo FAQ and page content when none exists yet. It is safe to
// call repeatedly.
func (s *Service) Seed(ctx context.Context) error {
	faqCount, err := s.repo.CountFAQs(ctx)
	if err != nil {
		return err
	}
	if faqCount == 0 {
		faqs := []FAQ{
			{Question: "How do I earn?", Answer: "Choose a product (Egg or Chicken), fund via wallet, and receive returns per cycle."},
			{Question: "Is my capital guaranteed?", Answer: "No. Returns depend on farm performance and market prices. We manage risks with SOPs, reserves, and audits."},
			{Question: "When are payouts made?", Answer: "Broilers: at harvest per 7-8 week cycle. Layers: monthly during production."},
		}
		for _, f := range faqs {
			f.ID = uuid.New().String()
			if err := s.repo.CreateFAQ(ctx, f); err != nil {
				return err
			}
		}
	}

	pageCount, err := s.repo.CountPages(ctx)
	if err != nil {
		return err
	}
	if pageCount == 0 {
		pages := []Page{
			{
				Slug:  "home",
				Title: "Welcome",
				BodyMD: "# Turn Everyday Protein Demand Into Real Yield\n" +
					"We connect everyday investors to vetted poultry farms through two products:\n\n" +
					"**Egg Note (Layers):** Monthly yield during lay cycle.\n" +
					"**Chicken Note (Broilers):** Short 7-8 week cycles with lump-sum returns.\n",
			},
			{
				Slug:  "how-it-works",
				Title: "How It Works",
				BodyMD: "# How It Works\n" +
					"1. **Create an account** and complete KYC.\n" +
					"2. **Deposit** into your wallet.\n" +
					"3. **Choose a product**: Egg Note (monthly yield) or Chicken Note (short cycles).\n" +
					"4. **Invest in a live batch** and track progress on your dashboard.\n" +
					"5. **Get paid** at harvest or monthly; reinvest or withdraw.\n",
			},
		}
		for _, p := range pages {
			p.ID = uuid.New().String()
			if err := s.repo.CreatePage(ctx, p); err != nil {
				return err
			}
		}
	}

	return nil
}
