package tracing

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"
)

// SQLiteTraceWriter is a writer that writes trace data to a SQLite database.
type SQLiteTraceWriter struct {
	*sql.DB
	statement *sql.Stmt

	dbName    string
	records   []Record
	batchSize int
}

// NewSQLiteTraceWriter creates a new SQLiteTraceWriter. The database is
// stored in path.sqlite3; an empty path gets a generated name.
func NewSQLiteTraceWriter(path string) *SQLiteTraceWriter {
	return &SQLiteTraceWriter{
		dbName:    path,
		batchSize: 100000,
	}
}

// FileName returns the name of the database file.
func (t *SQLiteTraceWriter) FileName() string {
	return t.dbName + ".sqlite3"
}

// Init creates the database. The database is flushed and closed at exit.
func (t *SQLiteTraceWriter) Init() error {
	if t.dbName == "" {
		t.dbName = "eventkernel_trace_" + xid.New().String()
	}

	if _, err := os.Stat(t.FileName()); err == nil {
		return fmt.Errorf("tracing: file %s already exists", t.FileName())
	}

	db, err := sql.Open("sqlite3", t.FileName())
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	if err := createTable(db); err != nil {
		_ = db.Close()
		return err
	}

	statement, err := db.Prepare(`
		INSERT INTO trace (id, pos, domain, item, detail, tick)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("tracing: %w", err)
	}

	t.DB = db
	t.statement = statement

	atexit.Register(func() {
		if err := t.Close(); err != nil {
			logrus.WithError(err).Error("closing sqlite trace")
		}
	})

	logrus.WithField("file", t.FileName()).Info("trace is collected")

	return nil
}

// Write buffers a record.
func (t *SQLiteTraceWriter) Write(r Record) {
	t.records = append(t.records, r)
	if len(t.records) >= t.batchSize {
		if err := t.Flush(); err != nil {
			panic(err)
		}
	}
}

// Flush writes all the buffered records to the database in one transaction.
func (t *SQLiteTraceWriter) Flush() error {
	if len(t.records) == 0 {
		return nil
	}

	tx, err := t.Begin()
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	stmt := tx.Stmt(t.statement)
	for _, r := range t.records {
		_, err := stmt.Exec(r.ID, r.Pos, r.Domain, r.Item, r.Detail, r.Tick)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("tracing: inserting %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	t.records = nil

	return nil
}

// Close flushes the buffered records and closes the database. Closing twice
// does nothing.
func (t *SQLiteTraceWriter) Close() error {
	if t.DB == nil {
		return nil
	}

	if err := t.Flush(); err != nil {
		return err
	}

	_ = t.statement.Close()
	err := t.DB.Close()
	t.DB = nil
	t.statement = nil

	return err
}

func createTable(db *sql.DB) error {
	stmts := []string{`
		create table trace
		(
			id     varchar(200) not null,
			pos    varchar(100) not null,
			domain varchar(200),
			item   text,
			detail text,
			tick   integer not null
		);`,
		`create index trace_pos_index on trace (pos);`,
		`create index trace_domain_index on trace (domain);`,
		`create index trace_tick_index on trace (tick);`,
	}

	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("tracing: creating table: %w", err)
		}
	}

	return nil
}
