//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ledger

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/mm"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"strings"
	"time"
)

// PGLedger - the ledger as a table in a PostgreSQL database
type PGLedger struct {
	pool *pgxpool.Pool
	msg  *mm.MessageMaker
}

// dbrun - column order matters: pgx.RowToStructByPos
type dbrun struct {
	ID          string
	Created     time.Time
	Mode        string
	Fingerprint string
	NTopics     int
	Labels      []byte
	Annotations []byte
}

func pgurl(pl str.PostgresLogin) string {
	const (
		UTPL = "postgres://%s:%s@%s:%d/%s?pool_min_conns=%d&pool_max_conns=%d"
		MN   = 1
		MX   = 4
	)
	return fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName, MN, MX)
}

// NewPostgres - build the pool; a server that is not there is reported in plain words
func NewPostgres(ctx context.Context, pl str.PostgresLogin, m *mm.MessageMaker) (*PGLedger, error) {
	const (
		FAIL1   = "could not parse the connection settings for %s@%s:%d/%s"
		FAIL2   = "could not connect to PostgreSQL"
		ERRRUN  = `dial error`
		FAILRUN = `the PostgreSQL server cannot be found; check that it is running and serving on port %d`
	)

	if m == nil {
		m = mm.Silent()
	}

	config, err := pgxpool.ParseConfig(pgurl(pl))
	if err != nil {
		// do not echo the url: it holds the password
		return nil, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL1, pl.User, pl.Host, pl.Port, pl.DBName))
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		msg := FAIL2
		if strings.Contains(err.Error(), ERRRUN) {
			msg = fmt.Sprintf(FAILRUN, pl.Port)
		}
		return nil, str.NewProcError(COMP, str.ErrMissingInput, msg).Wrap(err)
	}
	return &PGLedger{pool: pool, msg: m}, nil
}

func (l *PGLedger) Init(ctx context.Context) error {
	const (
		CREATE = `
			CREATE TABLE %s (
				id text PRIMARY KEY,
				created timestamptz,
				mode text,
				fingerprint text,
				ntopics integer,
				labels bytea,
				annotations bytea
			)`
		EXISTS = "already exists"
		MSG    = "'%s' already exists"
	)

	_, err := l.pool.Exec(ctx, fmt.Sprintf(CREATE, TABLENAME))
	if err != nil {
		if strings.Contains(err.Error(), EXISTS) {
			l.msg.TMI(fmt.Sprintf(MSG, TABLENAME))
			return nil
		}
		return str.NewProcError(COMP, str.ErrMalformed, "cannot create the run table").Wrap(err)
	}
	return nil
}

func (l *PGLedger) Record(ctx context.Context, r str.Run) error {
	const (
		INS = `INSERT INTO %s (id, created, mode, fingerprint, ntopics, labels, annotations) VALUES ($1, $2, $3, $4, $5, $6, $7)`
		MSG = "recorded %s run %s"
	)
	lb, ab, err := packrun(r)
	if err != nil {
		return err
	}
	_, err = l.pool.Exec(ctx, fmt.Sprintf(INS, TABLENAME), r.ID, r.Created, r.Mode, r.Fingerprint, r.NTopics, lb, ab)
	if err != nil {
		return str.NewProcError(COMP, str.ErrMalformed, "insert failed").Wrap(err)
	}
	l.msg.PEEK(fmt.Sprintf(MSG, r.Mode, r.ID))
	return nil
}

func (l *PGLedger) Latest(ctx context.Context, mode string) (str.Run, bool, error) {
	const (
		Q = `SELECT id, created, mode, fingerprint, ntopics, labels, annotations FROM %s WHERE mode = $1 ORDER BY created DESC LIMIT 1`
	)

	rows, err := l.pool.Query(ctx, fmt.Sprintf(Q, TABLENAME), mode)
	if err != nil {
		return str.Run{}, false, str.NewProcError(COMP, str.ErrMalformed, "query failed").Wrap(err)
	}

	found, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[dbrun])
	if errors.Is(err, pgx.ErrNoRows) {
		return str.Run{}, false, nil
	}
	if err != nil {
		return str.Run{}, false, str.NewProcError(COMP, str.ErrMalformed, "bad row").Wrap(err)
	}

	sum := str.RunSummary{
		ID:          found.ID,
		Created:     found.Created.UTC(),
		Mode:        found.Mode,
		Fingerprint: found.Fingerprint,
		NTopics:     found.NTopics,
	}
	r, err := unpackrun(sum, found.Labels, found.Annotations)
	return r, err == nil, err
}

func (l *PGLedger) List(ctx context.Context) ([]str.RunSummary, error) {
	const (
		Q = `SELECT id, created, mode, fingerprint, ntopics FROM %s ORDER BY created DESC`
	)

	rows, err := l.pool.Query(ctx, fmt.Sprintf(Q, TABLENAME))
	if err != nil {
		return nil, str.NewProcError(COMP, str.ErrMalformed, "query failed").Wrap(err)
	}

	ss, err := pgx.CollectRows(rows, pgx.RowToStructByPos[str.RunSummary])
	if err != nil {
		return nil, str.NewProcError(COMP, str.ErrMalformed, "bad row").Wrap(err)
	}
	if ss == nil {
		ss = []str.RunSummary{}
	}
	return ss, nil
}

func (l *PGLedger) Close() error {
	l.pool.Close()
	return nil
}
