//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/mm"
	"github.com/e-gun/TopicDistillery/internal/str"
	_ "modernc.org/sqlite"
	"time"
)

// SQLiteLedger - a single-file ledger; modernc.org/sqlite means no cgo
type SQLiteLedger struct {
	db  *sql.DB
	fn  string
	msg *mm.MessageMaker
}

func NewSQLite(fn string, m *mm.MessageMaker) (*SQLiteLedger, error) {
	const (
		DRIVER = "sqlite"
	)
	if m == nil {
		m = mm.Silent()
	}
	db, err := sql.Open(DRIVER, fn)
	if err != nil {
		return nil, str.NewProcError(COMP, str.ErrMissingInput, "").WithPath(fn).Wrap(err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	return &SQLiteLedger{db: db, fn: fn, msg: m}, nil
}

func (l *SQLiteLedger) Init(ctx context.Context) error {
	const (
		CREATE = `
			CREATE TABLE IF NOT EXISTS %s (
				id text PRIMARY KEY,
				created integer,
				mode text,
				fingerprint text,
				ntopics integer,
				labels blob,
				annotations blob
			)`
	)
	if _, err := l.db.ExecContext(ctx, fmt.Sprintf(CREATE, TABLENAME)); err != nil {
		return str.NewProcError(COMP, str.ErrMalformed, "cannot create the run table").WithPath(l.fn).Wrap(err)
	}
	return nil
}

func (l *SQLiteLedger) Record(ctx context.Context, r str.Run) error {
	const (
		INS = `INSERT INTO %s (id, created, mode, fingerprint, ntopics, labels, annotations) VALUES (?, ?, ?, ?, ?, ?, ?)`
		MSG = "recorded %s run %s"
	)
	lb, ab, err := packrun(r)
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx, fmt.Sprintf(INS, TABLENAME),
		r.ID, r.Created.UnixNano(), r.Mode, r.Fingerprint, r.NTopics, lb, ab)
	if err != nil {
		return str.NewProcError(COMP, str.ErrMalformed, "insert failed").WithPath(l.fn).Wrap(err)
	}
	l.msg.PEEK(fmt.Sprintf(MSG, r.Mode, r.ID))
	return nil
}

func (l *SQLiteLedger) Latest(ctx context.Context, mode string) (str.Run, bool, error) {
	const (
		Q = `SELECT id, created, mode, fingerprint, ntopics, labels, annotations FROM %s WHERE mode = ? ORDER BY created DESC LIMIT 1`
	)

	var sum str.RunSummary
	var created int64
	var lb, ab []byte

	row := l.db.QueryRowContext(ctx, fmt.Sprintf(Q, TABLENAME), mode)
	err := row.Scan(&sum.ID, &created, &sum.Mode, &sum.Fingerprint, &sum.NTopics, &lb, &ab)
	if errors.Is(err, sql.ErrNoRows) {
		return str.Run{}, false, nil
	}
	if err != nil {
		return str.Run{}, false, str.NewProcError(COMP, str.ErrMalformed, "query failed").WithPath(l.fn).Wrap(err)
	}
	sum.Created = time.Unix(0, created).UTC()

	r, err := unpackrun(sum, lb, ab)
	return r, err == nil, err
}

func (l *SQLiteLedger) List(ctx context.Context) ([]str.RunSummary, error) {
	const (
		Q = `SELECT id, created, mode, fingerprint, ntopics FROM %s ORDER BY created DESC`
	)

	rows, err := l.db.QueryContext(ctx, fmt.Sprintf(Q, TABLENAME))
	if err != nil {
		return nil, str.NewProcError(COMP, str.ErrMalformed, "query failed").WithPath(l.fn).Wrap(err)
	}
	defer rows.Close()

	ss := []str.RunSummary{}
	for rows.Next() {
		var s str.RunSummary
		var created int64
		if err = rows.Scan(&s.ID, &created, &s.Mode, &s.Fingerprint, &s.NTopics); err != nil {
			return nil, str.NewProcError(COMP, str.ErrMalformed, "bad row").WithPath(l.fn).Wrap(err)
		}
		s.Created = time.Unix(0, created).UTC()
		ss = append(ss, s)
	}
	return ss, rows.Err()
}

func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
