package dbconn

import (
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/gookit/slog"
)

// A Session owns one database connection for the lifetime of a check run.
// Rows come back as string-keyed maps; NULL columns are simply absent so
// callers can distinguish NULL from empty string.
type Session struct {
	db *sql.DB
}

// Connect opens and pings a connection for the given driver config
func Connect(cfg *mysql.Config) (*Session, error) {
	db, err := sql.Open(`mysql`, cfg.FormatDSN())
	if err != nil {
		return nil, err
	}

	// one synchronous check run needs exactly one connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	slog.Debugf("connected to %s", cfg.Addr)
	return &Session{db: db}, nil
}

// QueryAll runs the query and returns every row as a map
func (s *Session) QueryAll(query string) ([]map[string]string, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []map[string]string
	for rows.Next() {
		raw := make([]sql.RawBytes, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]string, len(cols))
		for i, col := range cols {
			if raw[i] != nil { // NULL stays absent
				row[col] = string(raw[i])
			}
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// QueryOne runs the query and returns the first row, or nil if there are no
// rows at all
func (s *Session) QueryOne(query string) (map[string]string, error) {
	rows, err := s.QueryAll(query)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Exec runs a write statement
func (s *Session) Exec(query string) error {
	_, err := s.db.Exec(query)
	return err
}

func (s *Session) Close() error {
	return s.db.Close()
}
