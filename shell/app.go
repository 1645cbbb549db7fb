package shell

import (
	"context"
	"errors"
	"time"

	"kirana/service"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// drainDelay gives the event router a moment to archive what a command just
// published before the process exits. Anything left over is picked up on the
// next run.
const drainDelay = 250 * time.Millisecond

type App struct {
	svc service.Service
}

func NewApp(svc service.Service) *cli.App {
	a := &App{svc: svc}

	return &cli.App{
		Name:  "kirana",
		Usage: "single-store inventory ledger",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "register a product with its initial stock",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "product name (e.g. 'Sugar')", Required: true},
					&cli.StringFlag{Name: "price", Usage: "product price (e.g. 50)", Required: true},
					&cli.IntFlag{Name: "quantity", Usage: "initial stock quantity", Value: 0},
				},
				Action: a.withRouter(a.addProduct),
			},
			{
				Name:  "stock-in",
				Usage: "add stock for a product",
				Flags: movementFlags(),
				Action: a.withRouter(func(ctx context.Context, c *cli.Context) error {
					return a.applyMovement(ctx, c, "stock_in")
				}),
			},
			{
				Name:  "sale",
				Usage: "sell stock of a product",
				Flags: movementFlags(),
				Action: a.withRouter(func(ctx context.Context, c *cli.Context) error {
					return a.applyMovement(ctx, c, "sale")
				}),
			},
			{
				Name:  "remove",
				Usage: "remove stock of a product manually",
				Flags: movementFlags(),
				Action: a.withRouter(func(ctx context.Context, c *cli.Context) error {
					return a.applyMovement(ctx, c, "manual_removal")
				}),
			},
			{
				Name:   "stock",
				Usage:  "view current stock levels",
				Action: a.withRouter(a.viewStock),
			},
			{
				Name:  "history",
				Usage: "view the movement ledger of a product",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "product", Usage: "product id", Required: true},
				},
				Action: a.withRouter(a.viewHistory),
			},
			{
				Name:   "verify",
				Usage:  "audit every stock projection against its movement ledger",
				Action: a.withRouter(a.verifyProjections),
			},
		},
	}
}

func movementFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{Name: "product", Usage: "product id", Required: true},
		&cli.IntFlag{Name: "quantity", Usage: "quantity to move", Required: true},
	}
}

// withRouter runs the command next to the event router, so outbox events
// published by the command get archived before the process exits.
func (a *App) withRouter(run func(ctx context.Context, c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, cancel := context.WithCancel(c.Context)
		defer cancel()

		errgrp, runCtx := errgroup.WithContext(ctx)
		errgrp.Go(func() error {
			return a.svc.Run(runCtx)
		})

		select {
		case <-a.svc.Running():
		case <-runCtx.Done():
			return errgrp.Wait()
		}

		runErr := run(runCtx, c)
		if runErr == nil {
			time.Sleep(drainDelay)
		}

		cancel()
		if waitErr := errgrp.Wait(); waitErr != nil && !errors.Is(waitErr, context.Canceled) {
			log.FromContext(c.Context).WithError(waitErr).Warn("Event router stopped with an error")
		}

		return renderError(runErr)
	}
}
