package dashboard

import (
	"context"
	"time"

	"github.com/safedep/presence/core/report"
	"golang.org/x/sync/errgroup"
)

// Data is one consistent snapshot of everything the dashboard shows.
type Data struct {
	Overview *report.Overview
	Roster   *report.Roster
}

type dataLoadedMsg struct {
	data *Data
}

type dataErrorMsg struct {
	err error
}

type tickMsg time.Time

func computeData(ctx context.Context, reporter Reporter, days ChartRange) (*Data, error) {
	data := &Data{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := reporter.Overview(ctx, int(days))
		if err != nil {
			return err
		}
		data.Overview = o
		return nil
	})
	g.Go(func() error {
		r, err := reporter.Roster(ctx)
		if err != nil {
			return err
		}
		data.Roster = r
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
