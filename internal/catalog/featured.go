package catalog

import (
	"context"

	"starfolk-client/internal/fetch"
	"starfolk-client/internal/models"

	"golang.org/x/sync/errgroup"
)

// Featured returns the featured characters: the configured names in their configured order
// when every one of them is in the catalog, otherwise the first FeaturedCount entries.
// Entries missing faction or description are completed from the detail endpoint; a failed
// completion keeps the summary, a cancelled one aborts the call.
func (s *Service) Featured(ctx context.Context) ([]models.Character, error) {
	all, err := s.list(ctx, SearchKey(""), s.opts.Resource, s.opts.FeaturedTimeout)
	if err != nil {
		return nil, err
	}

	picked := pickFeatured(all, s.opts.FeaturedNames, s.opts.FeaturedCount)

	g, gctx := errgroup.WithContext(ctx)
	for i := range picked {
		if !picked[i].NeedsHydration() {
			continue
		}
		g.Go(func() error {
			detail, err := s.GetItemByID(gctx, picked[i].ID)
			if err != nil {
				if fetch.IsCancelled(err) {
					return err
				}
				s.logger.DebugContext(ctx, "featured hydration failed", "id", picked[i].ID, "kind", fetch.KindOf(err).String())
				return nil
			}
			picked[i].Faction = detail.Faction
			picked[i].Description = detail.Description
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return picked, nil
}

func pickFeatured(all []models.Character, names []string, count int) []models.Character {
	byName := make(map[string]models.Character, len(all))
	for _, c := range all {
		if _, seen := byName[c.Name]; !seen {
			byName[c.Name] = c
		}
	}

	if len(names) > 0 {
		picked := make([]models.Character, 0, len(names))
		for _, n := range names {
			if c, ok := byName[n]; ok {
				picked = append(picked, c)
			}
		}
		if len(picked) == len(names) {
			return picked
		}
	}

	if count <= 0 || count > len(all) {
		count = len(all)
	}
	picked := make([]models.Character, count)
	copy(picked, all[:count])
	return picked
}
