package db

import (
	"context"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"
)

// ProjectionDrift reports a product whose projected quantity disagrees with
// the signed sum of its ledger, or whose projection row is missing entirely.
type ProjectionDrift struct {
	ProductID         int64
	ProjectedQuantity int
	LedgerQuantity    int
	ProjectionMissing bool
}

// CheckProjections audits every product against its movement ledger. It only
// reports drift; repairing a broken projection is a deliberate manual step,
// never something the ledger does on its own.
func (sr StockRepository) CheckProjections(ctx context.Context) ([]ProjectionDrift, error) {
	var rows []struct {
		ProductID         int64 `db:"product_id"`
		ProjectedQuantity *int  `db:"projected_quantity"`
		LedgerQuantity    int   `db:"ledger_quantity"`
	}

	err := sr.db.Conn.SelectContext(ctx, &rows, `
		SELECT
		    p.id AS product_id,
		    cs.quantity AS projected_quantity,
		    COALESCE(SUM(
		        CASE WHEN sm.action = 'stock_in' THEN sm.quantity ELSE -sm.quantity END
		    ), 0) AS ledger_quantity
		FROM
		    products p
		LEFT JOIN
		    current_stock cs ON p.id = cs.product_id
		LEFT JOIN
		    stock_movements sm ON p.id = sm.product_id
		GROUP BY
		    p.id, cs.quantity
		ORDER BY
		    p.id`)
	if err != nil {
		return nil, wrapStorageError("audit stock projections", err)
	}

	var drifts []ProjectionDrift
	for _, row := range rows {
		if row.ProjectedQuantity != nil && *row.ProjectedQuantity == row.LedgerQuantity {
			continue
		}

		drift := ProjectionDrift{
			ProductID:         row.ProductID,
			LedgerQuantity:    row.LedgerQuantity,
			ProjectionMissing: row.ProjectedQuantity == nil,
		}
		if row.ProjectedQuantity != nil {
			drift.ProjectedQuantity = *row.ProjectedQuantity
		}

		log.FromContext(ctx).WithFields(logrus.Fields{
			"product_id":         drift.ProductID,
			"projected_quantity": drift.ProjectedQuantity,
			"ledger_quantity":    drift.LedgerQuantity,
			"projection_missing": drift.ProjectionMissing,
		}).Error("Stock projection drifted from the movement ledger")

		drifts = append(drifts, drift)
	}

	return drifts, nil
}
