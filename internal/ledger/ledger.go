//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ledger

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/mm"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"github.com/google/uuid"
	"io"
	"time"
)

const (
	COMP      = "ledger"
	TABLENAME = "tds_runs"
)

// Ledger - an archive of finished runs: what was labelled, what the editor said, what got written
type Ledger interface {
	Init(ctx context.Context) error
	Record(ctx context.Context, r str.Run) error
	Latest(ctx context.Context, mode string) (str.Run, bool, error)
	List(ctx context.Context) ([]str.RunSummary, error)
	Close() error
}

// Open - the backend named by the configuration; "none" yields a ledger that keeps nothing
func Open(ctx context.Context, cfg *str.CurrentConfiguration, m *mm.MessageMaker) (Ledger, error) {
	const (
		MSG  = "run ledger: %s"
		FAIL = "unknown ledger type '%s'"
	)

	if m == nil {
		m = mm.Silent()
	}

	var l Ledger
	var err error
	switch cfg.LedgerType {
	case vv.LEDGERNONE, "":
		return NoLedger{}, nil
	case vv.LEDGERSQLITE:
		l, err = NewSQLite(cfg.LedgerFile, m)
	case vv.LEDGERPGSQL:
		l, err = NewPostgres(ctx, cfg.PGLogin, m)
	default:
		return nil, str.NewProcError(COMP, str.ErrDegenerate, fmt.Sprintf(FAIL, cfg.LedgerType))
	}
	if err != nil {
		return nil, err
	}

	if err = l.Init(ctx); err != nil {
		l.Close()
		return nil, err
	}
	m.FYI(fmt.Sprintf(MSG, cfg.LedgerType))
	return l, nil
}

// NewRun - stamp a run with a fresh id and the current time
func NewRun(mode string, fingerprint string, ntopics int, labels map[int]string, anns []str.Annotation) str.Run {
	if labels == nil {
		labels = make(map[int]string)
	}
	return str.Run{
		RunSummary: str.RunSummary{
			ID:          uuid.New().String(),
			Created:     time.Now().UTC(),
			Mode:        mode,
			Fingerprint: fingerprint,
			NTopics:     ntopics,
		},
		Labels:      labels,
		Annotations: anns,
	}
}

//
// BLOBS
//

// pack - json then gzip
func pack(v any) ([]byte, error) {
	const (
		GZ = gzip.BestSpeed
	)

	jb, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, GZ)
	if err != nil {
		return nil, err
	}
	if _, err = zw.Write(jb); err != nil {
		return nil, err
	}
	if err = zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unpack - gunzip then json
func unpack(b []byte, v any) error {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer zr.Close()

	jb, err := io.ReadAll(zr)
	if err != nil {
		return err
	}
	return json.Unmarshal(jb, v)
}

// packrun - the two blobs that ride along with a summary
func packrun(r str.Run) ([]byte, []byte, error) {
	lb, err := pack(r.Labels)
	if err != nil {
		return nil, nil, str.NewProcError(COMP, str.ErrMalformed, "labels").Wrap(err)
	}
	ab, err := pack(r.Annotations)
	if err != nil {
		return nil, nil, str.NewProcError(COMP, str.ErrMalformed, "annotations").Wrap(err)
	}
	return lb, ab, nil
}

func unpackrun(sum str.RunSummary, lb []byte, ab []byte) (str.Run, error) {
	r := str.Run{RunSummary: sum}
	if err := unpack(lb, &r.Labels); err != nil {
		return r, str.NewProcError(COMP, str.ErrMalformed, "labels of run "+sum.ID).Wrap(err)
	}
	if err := unpack(ab, &r.Annotations); err != nil {
		return r, str.NewProcError(COMP, str.ErrMalformed, "annotations of run "+sum.ID).Wrap(err)
	}
	return r, nil
}

//
// NO LEDGER
//

// NoLedger - remembers nothing
type NoLedger struct{}

func (NoLedger) Init(context.Context) error { return nil }

func (NoLedger) Record(context.Context, str.Run) error { return nil }

func (NoLedger) Latest(context.Context, string) (str.Run, bool, error) { return str.Run{}, false, nil }

func (NoLedger) List(context.Context) ([]str.RunSummary, error) { return []str.RunSummary{}, nil }

func (NoLedger) Close() error { return nil }
