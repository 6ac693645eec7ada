package api

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

const (
	PaidReportName     = "paid-moi-report.xlsx"
	ReceivedReportName = "Received-moi-report.xlsx"
)

func (c *Client) CreatePaid(ctx context.Context, entry model.PaidMoiEntry) error {
	return c.do(ctx, http.MethodPost, "/invest/create", entry, nil)
}

func (c *Client) PaidEntries(ctx context.Context) ([]model.PaidMoiEntry, error) {
	var entries []model.PaidMoiEntry
	if err := c.do(ctx, http.MethodGet, "/invest/all", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) PaidTotal(ctx context.Context) (float64, error) {
	var total model.TotalDTO
	if err := c.do(ctx, http.MethodGet, "/invest/total-amount", nil, &total); err != nil {
		return 0, err
	}
	return total.Value(), nil
}

func (c *Client) PaidReport(ctx context.Context) (model.Report, error) {
	return c.download(ctx, "/invest/export-excel", PaidReportName)
}

func (c *Client) CreateReceived(ctx context.Context, sub model.ReceivedMoiSubmission) error {
	return c.do(ctx, http.MethodPost, c.returnsCreatePath, sub, nil)
}

func (c *Client) ReceivedTotal(ctx context.Context) (float64, error) {
	var total model.TotalDTO
	if err := c.do(ctx, http.MethodGet, c.returnsTotalPath, nil, &total); err != nil {
		return 0, err
	}
	return total.Value(), nil
}

func (c *Client) ReceivedEntries(ctx context.Context, eventId string) ([]model.ReceivedMoiEntry, error) {
	var entries []model.ReceivedMoiEntry
	if err := c.do(ctx, http.MethodGet, "/returns/event/"+url.PathEscape(eventId), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) ReceivedReport(ctx context.Context, eventId string) (model.Report, error) {
	return c.download(ctx, "/returns/event/"+url.PathEscape(eventId)+"/export-excel", ReceivedReportName)
}

// Totals fetches both dashboard totals concurrently. Paid comes from the
// invest total, received from the returns total.
func (c *Client) Totals(ctx context.Context) (model.Totals, error) {
	var totals model.Totals

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := c.PaidTotal(ctx)
		totals.Paid = v
		return err
	})
	g.Go(func() error {
		v, err := c.ReceivedTotal(ctx)
		totals.Received = v
		return err
	})

	if err := g.Wait(); err != nil {
		return model.Totals{}, err
	}
	return totals, nil
}
