package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"
    "golang.org/x/sync/errgroup"

    "github.com/iliyamo/invoice-dashboard/internal/model"
)

// Overview is the read side needed by the dashboard landing page.
type Overview interface {
    FetchRevenue(ctx context.Context) ([]model.Revenue, error)
    FetchCardData(ctx context.Context) (model.CardData, error)
}

// LatestInvoices lists the newest invoices.
type LatestInvoices interface {
    FetchLatestInvoices(ctx context.Context) ([]model.LatestInvoice, error)
}

type DashboardHandler struct {
    Stats  Overview
    Latest LatestInvoices
}

func NewDashboardHandler(o Overview, l LatestInvoices) *DashboardHandler {
    return &DashboardHandler{Stats: o, Latest: l}
}

type overviewResp struct {
    Revenue        []model.Revenue       `json:"revenue"`
    LatestInvoices []model.LatestInvoice `json:"latestInvoices"`
    Cards          model.CardData        `json:"cards"`
}

// Overview loads the revenue chart, the latest invoices and the summary
// cards in parallel.  Any failure fails the page.
func (h *DashboardHandler) Overview(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()

    var resp overviewResp
    g, gctx := errgroup.WithContext(ctx)
    g.Go(func() (err error) {
        resp.Revenue, err = h.Stats.FetchRevenue(gctx)
        return err
    })
    g.Go(func() (err error) {
        resp.LatestInvoices, err = h.Latest.FetchLatestInvoices(gctx)
        return err
    })
    g.Go(func() (err error) {
        resp.Cards, err = h.Stats.FetchCardData(gctx)
        return err
    })
    if err := g.Wait(); err != nil {
        return storeFailed(c, err)
    }
    if resp.Revenue == nil {
        resp.Revenue = []model.Revenue{}
    }
    return c.JSON(http.StatusOK, resp)
}
