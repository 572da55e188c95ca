package workers

import (
	"context"
	"fmt"

	"github.com/amonks/oshinavi/db"
	"github.com/amonks/oshinavi/site"
	"go.uber.org/zap"
)

type previewFunc func(ctx context.Context, url string) (*site.Preview, error)

var fetchPreview previewFunc = site.Fetch

// runImageFetcher fills in artist images from the og:image of their official
// websites, and empty descriptions from og:description. Sites that fail or
// have no image are skipped for the rest of the run.
func runImageFetcher(ctx context.Context, c chan<- struct{}, db *db.DB, fetch previewFunc, batchSize int, log *zap.Logger) error {
	skip := map[string]struct{}{}
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("canceled: %w", err)
		}

		candidates, err := db.ArtistsWithoutImage(ctx, batchSize+len(skip))
		if err != nil {
			return fmt.Errorf("error getting artists without images: %w", err)
		}

		found := 0
		for _, artist := range candidates {
			if _, skipped := skip[artist.Name]; skipped {
				continue
			}
			found++
			skip[artist.Name] = struct{}{}

			preview, err := fetch(ctx, artist.OfficialWebsite)
			if err != nil {
				if ctx.Err() != nil {
					return fmt.Errorf("canceled: %w", ctx.Err())
				}
				log.Warn("failed to fetch official site",
					zap.String("artist", artist.Name),
					zap.String("url", artist.OfficialWebsite),
					zap.Error(err))
				continue
			}
			if artist.Description == "" && preview.Description != "" {
				if err := db.SetArtistDescription(ctx, artist.Name, preview.Description); err != nil {
					return err
				}
				log.Info("set artist description from official site",
					zap.String("artist", artist.Name),
					zap.String("site", preview.Title))
			}
			if preview.ImageURL == "" {
				log.Debug("official site has no image",
					zap.String("artist", artist.Name),
					zap.String("site", preview.Title))
				continue
			}
			if err := db.SetArtistImage(ctx, artist.Name, preview.ImageURL); err != nil {
				return err
			}
			log.Info("set artist image",
				zap.String("artist", artist.Name),
				zap.String("site", preview.Title),
				zap.String("image", preview.ImageURL))
		}
		if found == 0 {
			return nil
		}

		c <- struct{}{}
	}
}
