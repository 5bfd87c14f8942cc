//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opensqlite(t *testing.T) Ledger {
	t.Helper()
	cfg := &str.CurrentConfiguration{LedgerType: vv.LEDGERSQLITE, LedgerFile: filepath.Join(t.TempDir(), "ledger.db")}
	l, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := opensqlite(t)

	anns := []str.Annotation{{ID: 0, Label: "sports", Keep: []string{"ball"}, Stop: []string{"the"}}}
	first := NewRun(vv.MODEPRIOR, "aaaa", 5, nil, anns)
	first.Created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	second := NewRun(vv.MODEPRIOR, "bbbb", 6, map[int]string{2: "politics"}, anns)
	second.Created = first.Created.Add(time.Hour)
	vis := NewRun(vv.MODEVIS, "cccc", 6, map[int]string{1: "sports"}, nil)
	vis.Created = second.Created.Add(time.Hour)

	for _, r := range []str.Run{first, second, vis} {
		require.NoError(t, l.Record(ctx, r))
	}

	got, ok, err := l.Latest(ctx, vv.MODEPRIOR)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "bbbb", got.Fingerprint)
	assert.Equal(t, map[int]string{2: "politics"}, got.Labels)
	assert.Equal(t, anns, got.Annotations)
	assert.True(t, second.Created.Equal(got.Created))

	ss, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, ss, 3)
	assert.Equal(t, []string{vis.ID, second.ID, first.ID}, []string{ss[0].ID, ss[1].ID, ss[2].ID})
	assert.Equal(t, 6, ss[0].NTopics)
}

func TestSQLiteLatestEmpty(t *testing.T) {
	_, ok, err := opensqlite(t).Latest(context.Background(), vv.MODEPRIOR)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteInitTwice(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "ledger.db")
	cfg := &str.CurrentConfiguration{LedgerType: vv.LEDGERSQLITE, LedgerFile: fn}
	for i := 0; i < 2; i++ {
		l, err := Open(context.Background(), cfg, nil)
		require.NoError(t, err)
		require.NoError(t, l.Close())
	}
}

func TestNoLedger(t *testing.T) {
	l, err := Open(context.Background(), &str.CurrentConfiguration{LedgerType: vv.LEDGERNONE}, nil)
	require.NoError(t, err)
	require.NoError(t, l.Record(context.Background(), NewRun(vv.MODEVIS, "", 1, nil, nil)))
	ss, err := l.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ss)
	assert.Empty(t, ss)
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open(context.Background(), &str.CurrentConfiguration{LedgerType: "etcd"}, nil)
	assert.True(t, errors.Is(err, str.ErrDegenerate))
}

func TestBlobs(t *testing.T) {
	in := map[int]string{0: "a", 12: "b"}
	b, err := pack(in)
	require.NoError(t, err)

	var out map[int]string
	require.NoError(t, unpack(b, &out))
	assert.Equal(t, in, out)

	assert.Error(t, unpack([]byte("not gzip"), &out))
}

func TestPGURL(t *testing.T) {
	pl := str.PostgresLogin{Host: "db", Port: 5433, User: "u", Pass: "p", DBName: "t"}
	assert.Equal(t, "postgres://u:p@db:5433/t?pool_min_conns=1&pool_max_conns=4", pgurl(pl))
}

func TestNewRun(t *testing.T) {
	r := NewRun(vv.MODEPRIOR, "fp", 3, nil, nil)
	assert.Len(t, r.ID, 36)
	assert.NotNil(t, r.Labels)
	assert.WithinDuration(t, time.Now(), r.Created, time.Minute)
}
