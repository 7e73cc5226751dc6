package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/cli/config"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdFeed() *cli.Command {
	var (
		reportAPICfg  config.ReportAPI
		categoriesCfg config.Categories
		locationCfg   config.Location
		output        config.Output
		filterKind    string
		filterValue   string
		limit         int
		pages         int
	)

	flags := joinFlags(
		reportAPICfg.Flags(),
		categoriesCfg.Flags(),
		locationCfg.Flags(),
		output.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Usage:       "Feed filter (all, category, status, nearby, recent)",
				Value:       string(model.FilterKindAll),
				Destination: &filterKind,
			},
			&cli.StringFlag{
				Name:        "value",
				Usage:       "Filter value: category ID, status, radius in km or age window",
				Destination: &filterValue,
			},
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "Page size",
				Value:       usecase.DefaultFeedLimit,
				Destination: &limit,
			},
			&cli.IntFlag{
				Name:        "pages",
				Usage:       "Number of pages to fetch",
				Value:       1,
				Destination: &pages,
			},
		},
	)

	return &cli.Command{
		Name:  "feed",
		Usage: "List reports of the feed",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := output.Validate(); err != nil {
				return err
			}
			if pages < 1 {
				return goerr.New("pages must be at least 1", goerr.V("pages", pages))
			}
			filter, err := model.ParseFilter(filterKind, filterValue)
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Debug("Listing feed",
				slog.Any("reportAPI", reportAPICfg),
				slog.Any("location", locationCfg),
				slog.String("filter", filterKind),
				slog.String("value", filterValue),
			)

			repo, err := reportAPICfg.Configure(ctx, nil)
			if err != nil {
				return err
			}
			taxonomy, err := categoriesCfg.Configure()
			if err != nil {
				return err
			}
			resolver, err := locationCfg.Configure()
			if err != nil {
				return err
			}

			req := usecase.FeedRequest{
				Filter: filter,
				Page:   1,
				Limit:  limit,
			}
			if res, err := resolver.Resolve(ctx); err == nil && !res.PermissionDenied {
				req.Origin = &res.Coordinates
			}

			cards, err := usecase.NewFeed(repo, taxonomy, resolver).Collect(ctx, req, pages)
			if err != nil {
				return goerr.Wrap(err, "failed to list feed")
			}

			if output.IsJSON() {
				if cards == nil {
					cards = []usecase.ReportCard{}
				}
				return output.WriteJSON(c.Root().Writer, cards)
			}
			return writeFeedText(c.Root().Writer, cards)
		},
	}
}

func writeFeedText(w io.Writer, cards []usecase.ReportCard) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, model.MessageNoReports)
		return err
	}

	for _, card := range cards {
		line := fmt.Sprintf("%-8s %-12s %-24s %s | %s | %s",
			card.Report.ID, card.Report.Status, card.Category.Name,
			card.Report.Title, card.ShortAddress, card.TimeAgo)
		if card.Distance != "" {
			line += " | " + card.Distance
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return goerr.Wrap(err, "failed to write feed")
		}
	}
	return nil
}
