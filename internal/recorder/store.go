package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"SmartWorth/internal/model"
)

// dialect captures the differences between the supported SQL engines.
type dialect struct {
	Name     string
	AutoID   string
	Real     string
	Numbered bool // $1, $2 placeholders instead of ?
}

var (
	sqliteDialect   = dialect{Name: "sqlite", AutoID: "INTEGER PRIMARY KEY AUTOINCREMENT", Real: "REAL"}
	postgresDialect = dialect{Name: "postgres", AutoID: "BIGSERIAL PRIMARY KEY", Real: "DOUBLE PRECISION", Numbered: true}
)

// rebind rewrites ? placeholders for engines that number them.
func (d dialect) rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			name_key         TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			category         TEXT NOT NULL,
			avg_price        ` + d.Real + `,
			min_price        ` + d.Real + `,
			max_price        ` + d.Real + `,
			value_score      INTEGER,
			trend            TEXT,
			supply_level     TEXT,
			consistency      ` + d.Real + `,
			description      TEXT,
			last_analysis_id TEXT,
			analysis_count   INTEGER NOT NULL DEFAULT 1,
			updated_at       BIGINT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS analyses (
			id           TEXT PRIMARY KEY,
			name_key     TEXT NOT NULL,
			name         TEXT NOT NULL,
			category     TEXT,
			avg_price    ` + d.Real + `,
			min_price    ` + d.Real + `,
			max_price    ` + d.Real + `,
			value_score  INTEGER,
			trend        TEXT,
			supply_level TEXT,
			consistency  ` + d.Real + `,
			analyzed_at  BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_name ON analyses(name_key, analyzed_at)`,

		`CREATE TABLE IF NOT EXISTS price_history (
			id           ` + d.AutoID + `,
			analysis_id  TEXT NOT NULL,
			name_key     TEXT NOT NULL,
			product_name TEXT NOT NULL,
			source       TEXT NOT NULL,
			price        ` + d.Real + `,
			recorded_at  BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_name ON price_history(name_key, recorded_at)`,
	}
}

// SQLRecorder stores products, analysis runs and the flattened price
// history in a SQL database.
type SQLRecorder struct {
	db *sql.DB
	d  dialect
	mu sync.Mutex
}

func newSQLRecorder(db *sql.DB, d dialect) (*SQLRecorder, error) {
	r := &SQLRecorder{db: db, d: d}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLRecorder) migrate() error {
	for _, s := range r.d.schema() {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RecordAnalysis upserts the product row, inserts the run and one history
// row per observed price, all in one transaction.
func (r *SQLRecorder) RecordAnalysis(res *model.AnalysisResult, bySource model.PricesBySource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := res.AnalyzedAt
	if at.IsZero() {
		at = time.Now()
	}
	ts := at.Unix()
	id := res.ID
	if id == "" {
		id = uuid.NewString()
	}
	p := res.Product
	key := nameKey(p.Name)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(r.d.rebind(`INSERT INTO products
		(name_key, name, category, avg_price, min_price, max_price, value_score, trend,
		 supply_level, consistency, description, last_analysis_id, analysis_count, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,1,?)
		ON CONFLICT (name_key) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			avg_price = excluded.avg_price,
			min_price = excluded.min_price,
			max_price = excluded.max_price,
			value_score = excluded.value_score,
			trend = excluded.trend,
			supply_level = excluded.supply_level,
			consistency = excluded.consistency,
			description = excluded.description,
			last_analysis_id = excluded.last_analysis_id,
			analysis_count = products.analysis_count + 1,
			updated_at = excluded.updated_at`),
		key, p.Name, string(p.Category), p.AvgPrice, p.MinPrice, p.MaxPrice,
		res.ValueScore, res.Trend, string(res.SupplyLevel), res.Consistency,
		p.Description, id, ts,
	); err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	if _, err := tx.Exec(r.d.rebind(`INSERT INTO analyses
		(id, name_key, name, category, avg_price, min_price, max_price,
		 value_score, trend, supply_level, consistency, analyzed_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`),
		id, key, p.Name, string(p.Category), p.AvgPrice, p.MinPrice, p.MaxPrice,
		res.ValueScore, res.Trend, string(res.SupplyLevel), res.Consistency, ts,
	); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	stmt, err := tx.Prepare(r.d.rebind(`INSERT INTO price_history
		(analysis_id, name_key, product_name, source, price, recorded_at)
		VALUES (?,?,?,?,?,?)`))
	if err != nil {
		return fmt.Errorf("prepare history insert: %w", err)
	}
	defer stmt.Close()
	for _, obs := range bySource.Observations() {
		if _, err := stmt.Exec(id, key, p.Name, obs.Source, obs.Price, ts); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
	}

	return tx.Commit()
}

const productColumns = `name, category, avg_price, min_price, max_price, value_score, trend,
	supply_level, consistency, description, last_analysis_id, analysis_count, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (*model.ProductRecord, error) {
	var (
		rec                     model.ProductRecord
		category, supply        string
		trend, desc, lastID     sql.NullString
		avg, low, high, consist sql.NullFloat64
		score                   sql.NullInt64
		updated                 int64
	)
	if err := s.Scan(&rec.Name, &category, &avg, &low, &high, &score, &trend,
		&supply, &consist, &desc, &lastID, &rec.AnalysisCount, &updated); err != nil {
		return nil, err
	}
	rec.Category = model.Category(category)
	rec.SupplyLevel = model.SupplyLevel(supply)
	rec.AvgPrice, rec.MinPrice, rec.MaxPrice = avg.Float64, low.Float64, high.Float64
	rec.ValueScore = int(score.Int64)
	rec.Trend = trend.String
	rec.Consistency = consist.Float64
	rec.Description = desc.String
	rec.LastAnalysis = lastID.String
	rec.UpdatedAt = time.Unix(updated, 0)
	return &rec, nil
}

func (r *SQLRecorder) GetProduct(name string) (*model.ProductRecord, error) {
	row := r.db.QueryRow(r.d.rebind(`SELECT `+productColumns+` FROM products WHERE name_key = ?`), nameKey(name))
	rec, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return rec, nil
}

// ListProducts returns every stored product, most recently analyzed first.
func (r *SQLRecorder) ListProducts() ([]model.ProductRecord, error) {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY updated_at DESC, name_key`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []model.ProductRecord
	for rows.Next() {
		rec, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// PriceHistory returns the newest observations first. limit <= 0 returns all.
func (r *SQLRecorder) PriceHistory(name string, limit int) ([]model.HistoryEntry, error) {
	q := `SELECT id, analysis_id, product_name, source, price, recorded_at
		FROM price_history WHERE name_key = ? ORDER BY recorded_at DESC, id DESC`
	args := []any{nameKey(name)}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(r.d.rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []model.HistoryEntry
	for rows.Next() {
		var (
			e  model.HistoryEntry
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.AnalysisID, &e.ProductName, &e.Source, &e.Price, &ts); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.RecordedAt = time.Unix(ts, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteProduct removes a product with its runs and history.
func (r *SQLRecorder) DeleteProduct(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := nameKey(name)
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(r.d.rebind(`DELETE FROM products WHERE name_key = ?`), key)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	for _, table := range []string{"analyses", "price_history"} {
		if _, err := tx.Exec(r.d.rebind(`DELETE FROM `+table+` WHERE name_key = ?`), key); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func (r *SQLRecorder) Close() error {
	log.Printf("[INFO] closing %s recorder", r.d.Name)
	return r.db.Close()
}
