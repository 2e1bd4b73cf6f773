package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"foodie-storefront/menu-svc/internal/domain"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var placeholder = regexp.MustCompile(`\$\d+`)

const schema = `
CREATE TABLE IF NOT EXISTS menu_items (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	price       BIGINT NOT NULL DEFAULT 0,
	category    TEXT NOT NULL,
	veg         BOOLEAN NOT NULL DEFAULT FALSE,
	weight      TEXT NOT NULL DEFAULT '',
	energy      TEXT NOT NULL DEFAULT '',
	image_url   TEXT NOT NULL DEFAULT '',
	best_seller BOOLEAN NOT NULL DEFAULT FALSE,
	extras      TEXT NOT NULL DEFAULT '{}',
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const selectColumns = `SELECT id, name, price, category, veg, weight, energy, image_url, best_seller, extras FROM menu_items`

// extras holds the optional item fields that are never queried on.
type extras struct {
	AddOns          []domain.AddOn     `json:"addOns,omitempty"`
	ComboItems      []domain.ComboItem `json:"comboItems,omitempty"`
	PreparationTime int                `json:"preparationTime,omitempty"`
	UpsellItems     []string           `json:"upsellItems,omitempty"`
}

// SQLRepository stores the menu in Postgres or SQLite. Queries are written
// with Postgres placeholders and rebound for SQLite.
type SQLRepository struct {
	DB      *sql.DB
	dialect Dialect
}

func NewSQLRepository(db *sql.DB, dialect Dialect) *SQLRepository {
	return &SQLRepository{DB: db, dialect: dialect}
}

func (r *SQLRepository) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

func (r *SQLRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, selectColumns+` ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := scanItem(r.DB.QueryRowContext(ctx, r.bind(selectColumns+` WHERE id = $1`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	return item, err
}

func (r *SQLRepository) Upsert(ctx context.Context, item *domain.MenuItem) (bool, error) {
	extra, err := json.Marshal(extras{
		AddOns:          item.AddOns,
		ComboItems:      item.ComboItems,
		PreparationTime: item.PreparationTime,
		UpsellItems:     item.UpsellItems,
	})
	if err != nil {
		return false, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, r.bind(`SELECT EXISTS(SELECT 1 FROM menu_items WHERE id = $1)`), item.ID).Scan(&exists); err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx, r.bind(`
		INSERT INTO menu_items (id, name, price, category, veg, weight, energy, image_url, best_seller, extras)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			category = excluded.category,
			veg = excluded.veg,
			weight = excluded.weight,
			energy = excluded.energy,
			image_url = excluded.image_url,
			best_seller = excluded.best_seller,
			extras = excluded.extras`),
		item.ID, item.Name, item.Price, item.Category, item.Veg, item.Weight, item.Energy, item.Image, item.BestSeller, string(extra))
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return !exists, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, r.bind(`DELETE FROM menu_items WHERE id = $1`), id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count)
	return count, err
}

func (r *SQLRepository) bind(query string) string {
	if r.dialect == SQLite {
		return placeholder.ReplaceAllString(query, "?")
	}
	return query
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*domain.MenuItem, error) {
	var (
		item  domain.MenuItem
		extra string
	)
	if err := s.Scan(&item.ID, &item.Name, &item.Price, &item.Category, &item.Veg,
		&item.Weight, &item.Energy, &item.Image, &item.BestSeller, &extra); err != nil {
		return nil, err
	}

	var x extras
	if extra != "" {
		if err := json.Unmarshal([]byte(extra), &x); err != nil {
			return nil, fmt.Errorf("decode extras for %s: %w", item.ID, err)
		}
	}
	item.AddOns = x.AddOns
	item.ComboItems = x.ComboItems
	item.PreparationTime = x.PreparationTime
	item.UpsellItems = x.UpsellItems
	return &item, nil
}
