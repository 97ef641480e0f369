package assets

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Loaded is one finished image load.
type Loaded struct {
	Index int
	Ref   string
	Image *Animation
}

// LoadEach starts loading every ref concurrently. Each completion is sent on
// the returned channel as soon as it finishes, so results arrive in
// completion order rather than index order. The channel is closed when all
// loads are done; the error channel then yields the first failure (or nil).
func LoadEach(ctx context.Context, f *Fetcher, refs []string) (<-chan Loaded, <-chan error) {
	out := make(chan Loaded, len(refs))
	errc := make(chan error, 1)

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			anim, err := LoadAnimation(gctx, f, ref)
			if err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
			out <- Loaded{Index: i, Ref: ref, Image: anim}
			return nil
		})
	}

	go func() {
		err := g.Wait()
		close(out)
		errc <- err
	}()

	return out, errc
}
