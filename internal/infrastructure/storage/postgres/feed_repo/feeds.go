// Package feed_repo loads the raw daily feeds from PostgreSQL. It is a
// collaborator of the reconciliation engine, not part of it: the engine only
// ever sees materialized in-memory records.
package feed_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Zalint/MATA-sub002/internal/domain/feeds"
	"github.com/Zalint/MATA-sub002/internal/domain/reconcile"
)

// FeedRepo reads the four raw feeds for a date.
type FeedRepo struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewFeedRepo creates a new feed repository.
func NewFeedRepo(pool *pgxpool.Pool) *FeedRepo {
	return &FeedRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// feedRow is one raw feed line as stored. Numeric columns are nullable:
// a quantity-only record has no total yet and vice versa.
type feedRow struct {
	Site      string   `db:"site"`
	Product   string   `db:"product"`
	Quantity  *float64 `db:"quantity"`
	UnitPrice *float64 `db:"unit_price"`
	Total     *float64 `db:"total"`
	Direction *int     `db:"direction"`
	Comment   *string  `db:"comment"`
}

func (r feedRow) toRawRecord() feeds.RawRecord {
	rec := feeds.RawRecord{
		Site:    r.Site,
		Product: r.Product,
	}
	if r.Quantity != nil {
		rec.Quantity = *r.Quantity
	}
	if r.UnitPrice != nil {
		rec.UnitPrice = *r.UnitPrice
	}
	if r.Total != nil {
		rec.Total = *r.Total
	}
	if r.Direction != nil {
		rec.Direction = *r.Direction
	}
	if r.Comment != nil {
		rec.Comment = *r.Comment
	}
	return rec
}

// LoadInputs materializes the four feeds for a date in the shapes the engine
// consumes: keyed maps for the stock snapshots, flat lists for transfers and
// sales.
func (r *FeedRepo) LoadInputs(ctx context.Context, date time.Time) (reconcile.Inputs, error) {
	in := reconcile.Inputs{Date: date}

	morning, err := r.loadKeyed(ctx, "stock_morning", date)
	if err != nil {
		return reconcile.Inputs{}, fmt.Errorf("load stock morning: %w", err)
	}
	in.StockMorning = morning

	evening, err := r.loadKeyed(ctx, "stock_evening", date)
	if err != nil {
		return reconcile.Inputs{}, fmt.Errorf("load stock evening: %w", err)
	}
	in.StockEvening = evening

	transfers, err := r.loadList(ctx, "transfers", date, true)
	if err != nil {
		return reconcile.Inputs{}, fmt.Errorf("load transfers: %w", err)
	}
	in.Transfers = transfers

	sales, err := r.loadList(ctx, "sales", date, false)
	if err != nil {
		return reconcile.Inputs{}, fmt.Errorf("load sales: %w", err)
	}
	in.Sales = sales

	return in, nil
}

// loadKeyed reads a stock snapshot table into a "<site>-<product>" keyed map,
// mirroring the shape the snapshot feeds use on the wire.
func (r *FeedRepo) loadKeyed(ctx context.Context, table string, date time.Time) (map[string]feeds.RawRecord, error) {
	rows, err := r.query(ctx, table, date, false)
	if err != nil {
		return nil, err
	}

	records := make(map[string]feeds.RawRecord, len(rows))
	for _, row := range rows {
		key := row.Site + "-" + row.Product
		records[key] = row.toRawRecord()
	}
	return records, nil
}

// loadList reads a movement table (transfers, sales) into a flat list.
func (r *FeedRepo) loadList(ctx context.Context, table string, date time.Time, withDirection bool) ([]feeds.RawRecord, error) {
	rows, err := r.query(ctx, table, date, withDirection)
	if err != nil {
		return nil, err
	}

	records := make([]feeds.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRawRecord())
	}
	return records, nil
}

func (r *FeedRepo) query(ctx context.Context, table string, date time.Time, withDirection bool) ([]feedRow, error) {
	columns := []string{"site", "product", "quantity", "unit_price", "total", "comment"}
	if withDirection {
		columns = append(columns, "direction")
	} else {
		columns = append(columns, "NULL::int AS direction")
	}

	sql, args, err := r.builder.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"report_date": date.Format("2006-01-02")}).
		OrderBy("site", "product", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []feedRow
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	return rows, nil
}
