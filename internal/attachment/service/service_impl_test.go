package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/founderspw/somanager/internal/attachment/domain"
	"github.com/founderspw/somanager/internal/clock"
	"github.com/founderspw/somanager/internal/config"
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
)

type fixture struct {
	svc domain.Service
	db  *gorm.DB
	cfg config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&sodomain.Order{}, &sodomain.LineEntry{}, &domain.Attachment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{DataDir: t.TempDir()}
	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)),
		Cfg:   cfg,
	})

	return &fixture{svc: svc, db: gdb, cfg: cfg}
}

func (f *fixture) seedOrder(t *testing.T) sodomain.Order {
	t.Helper()
	order := sodomain.Order{ID: snowflake.ID(time.Now().UnixNano()), CustomerID: 1, Status: sodomain.StatusDraft}
	require.NoError(t, f.db.Create(&order).Error)
	return order
}

func TestAttach_StoresFileAndRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t)

	att, err := f.svc.Attach(ctx, order.ID.String(), "before.jpg", "image/jpeg", "front yard",
		strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "before.jpg", att.FileName)
	assert.Equal(t, "front yard", att.Note)
	assert.Equal(t, int64(len("jpeg-bytes")), att.SizeBytes)
	assert.NotEqual(t, "before.jpg", att.StoredName)
	assert.Equal(t, ".jpg", filepath.Ext(att.StoredName))

	data, err := os.ReadFile(filepath.Join(f.cfg.AttachmentDir(), att.StoredName))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestAttach_SanitizesTraversalPaths(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t)

	att, err := f.svc.Attach(ctx, order.ID.String(), "../../etc/passwd", "", "",
		strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", att.FileName)

	_, err = f.svc.Attach(ctx, order.ID.String(), "  ", "", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestAttach_RequiresExistingOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Attach(context.Background(), "987654321", "a.txt", "", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, sodomain.ErrNotFound)
}

func TestOpenListDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t)

	att, err := f.svc.Attach(ctx, order.ID.String(), "notes.txt", "text/plain", "",
		strings.NewReader("hello"))
	require.NoError(t, err)

	got, rc, err := f.svc.Open(ctx, att.ID.String())
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, att.ID, got.ID)

	listed, err := f.svc.List(ctx, order.ID.String())
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, f.svc.Delete(ctx, att.ID.String()))

	_, _, err = f.svc.Open(ctx, att.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = os.Stat(filepath.Join(f.cfg.AttachmentDir(), att.StoredName))
	assert.True(t, os.IsNotExist(err))

	listed, err = f.svc.List(ctx, order.ID.String())
	require.NoError(t, err)
	assert.Empty(t, listed)
}
