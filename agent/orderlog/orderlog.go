// Package orderlog persists completed checkouts to Postgres. It is an
// optional sink: when no DSN is configured the cart service falls back
// to its no-op journal and orders live only in the conversation.
package orderlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	cartx "github.com/velourlabs/scentbot/agent/cart"
)

type Config struct {
	DSN     string        `envconfig:"DSN"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"5s"`
}

// Enabled reports whether a journal can be built from this config.
func (c Config) Enabled() bool {
	return c.DSN != ""
}

type orderRow struct {
	bun.BaseModel `bun:"table:orders"`

	ID        int64     `bun:"id,pk,autoincrement"`
	OrderID   string    `bun:"order_id,notnull"`
	UserPhone string    `bun:"user_phone,notnull"`
	Total     int       `bun:"total,notnull"`
	Currency  string    `bun:"currency,notnull"`
	Payload   string    `bun:"payload,type:jsonb,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// BunJournal writes one row per completed order.
type BunJournal struct {
	db      *bun.DB
	timeout time.Duration
}

var _ cartx.OrderJournal = (*BunJournal)(nil)

func NewBunJournal(cfg Config) (*BunJournal, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("order journal DSN is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &BunJournal{db: db, timeout: timeout}, nil
}

// EnsureSchema creates the orders table when it does not exist yet.
func (j *BunJournal) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	if _, err := j.db.NewCreateTable().
		Model((*orderRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

func (j *BunJournal) Record(ctx context.Context, order cartx.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", order.OrderID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	row := &orderRow{
		OrderID:   order.OrderID,
		UserPhone: order.Customer.Phone,
		Total:     order.Total,
		Currency:  order.Currency,
		Payload:   string(payload),
	}
	if _, err := j.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert order %s: %w", order.OrderID, err)
	}
	return nil
}

func (j *BunJournal) Close() error {
	return j.db.Close()
}
