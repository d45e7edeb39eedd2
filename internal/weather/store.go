package weather

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS weather_forecasts (
	area_code    TEXT,
	date         TEXT,
	weather_text TEXT,
	PRIMARY KEY (area_code, date)
);
CREATE TABLE IF NOT EXISTS areas (
	code        TEXT PRIMARY KEY,
	name        TEXT,
	center_name TEXT
);
`

// Store is the local SQLite cache of areas and forecast lines.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the cache database at path.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAreas upserts areas by code.
func (s *Store) SaveAreas(ctx context.Context, areas []Area) error {
	return s.inTx(ctx, `INSERT OR REPLACE INTO areas (code, name, center_name) VALUES (?, ?, ?)`, func(stmt *sql.Stmt) error {
		for _, a := range areas {
			if _, err := stmt.ExecContext(ctx, a.Code, a.Name, a.Center); err != nil {
				return fmt.Errorf("save area %s: %w", a.Code, err)
			}
		}
		return nil
	})
}

// Areas lists cached areas ordered by center name.
func (s *Store) Areas(ctx context.Context) ([]Area, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, name, center_name FROM areas ORDER BY center_name, code`)
	if err != nil {
		return nil, fmt.Errorf("query areas: %w", err)
	}
	defer rows.Close()

	var areas []Area
	for rows.Next() {
		var a Area
		if err := rows.Scan(&a.Code, &a.Name, &a.Center); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// SaveForecast upserts forecast lines keyed by (areaCode, date).
func (s *Store) SaveForecast(ctx context.Context, areaCode string, days []DayForecast) error {
	return s.inTx(ctx, `INSERT OR REPLACE INTO weather_forecasts (area_code, date, weather_text) VALUES (?, ?, ?)`, func(stmt *sql.Stmt) error {
		for _, d := range days {
			if _, err := stmt.ExecContext(ctx, areaCode, d.Date, d.Weather); err != nil {
				return fmt.Errorf("save forecast %s/%s: %w", areaCode, d.Date, err)
			}
		}
		return nil
	})
}

// Forecast returns the cached lines for an area, oldest date first.
func (s *Store) Forecast(ctx context.Context, areaCode string) ([]DayForecast, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, weather_text FROM weather_forecasts WHERE area_code = ? ORDER BY date ASC`, areaCode)
	if err != nil {
		return nil, fmt.Errorf("query forecast %s: %w", areaCode, err)
	}
	defer rows.Close()

	var days []DayForecast
	for rows.Next() {
		var d DayForecast
		if err := rows.Scan(&d.Date, &d.Weather); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		d.Icon = IconFor(d.Weather)
		days = append(days, d)
	}
	return days, rows.Err()
}

func (s *Store) inTx(ctx context.Context, query string, fn func(*sql.Stmt) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	if err := fn(stmt); err != nil {
		return err
	}
	return tx.Commit()
}
