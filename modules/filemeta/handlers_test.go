package filemeta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestModule(t *testing.T) *Module {
	t.Helper()

	m := NewModule(Config{
		Database: DatabaseConfig{Driver: DriverSQLite, DSN: ":memory:"},
	}, &mockLogger{})
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() {
		_ = m.Stop(context.Background())
	})
	return m
}

func TestModule_Name(t *testing.T) {
	m := NewModule(Config{}, &mockLogger{})
	assert.Equal(t, "filemeta", m.Name())
}

func TestModule_EmitEvents(t *testing.T) {
	m := NewModule(Config{}, &mockLogger{})
	defs := m.EmitEvents()
	require.Len(t, defs, 1)
}

func TestModule_Health(t *testing.T) {
	m := NewModule(Config{Database: DatabaseConfig{Driver: DriverSQLite, DSN: ":memory:"}}, &mockLogger{})
	ctx := context.Background()

	status := m.Health(ctx)
	assert.False(t, status.Healthy)

	require.NoError(t, m.Start(ctx))
	status = m.Health(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, "disabled", status.Details["cache"])

	require.NoError(t, m.Stop(ctx))
	status = m.Health(ctx)
	assert.False(t, status.Healthy)
}

func TestModule_StartWithUnreachableCache(t *testing.T) {
	m := NewModule(Config{
		Database:  DatabaseConfig{Driver: DriverSQLite, DSN: ":memory:"},
		RedisAddr: "127.0.0.1:1",
	}, &mockLogger{})

	err := m.Start(context.Background())
	assert.Error(t, err)
}

func TestModule_handleUploadFile(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	record, err := m.handleUploadFile(ctx, NewUploadFileRequest(validMetadata()), nil)
	require.NoError(t, err)
	assert.Positive(t, record.ID)
	assert.Equal(t, "L1", record.PublicLink)

	_, err = m.handleUploadFile(ctx, NewUploadFileRequest(validMetadata()), nil)
	assert.ErrorIs(t, err, ErrDuplicateLink)
}

func TestModule_handleGetFileByLink(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	created, err := m.handleUploadFile(ctx, NewUploadFileRequest(validMetadata()), nil)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		link := "L1"
		resp, err := m.handleGetFileByLink(ctx, GetFileByLinkRequest{PublicLink: &link}, nil)
		require.NoError(t, err)
		assert.True(t, resp.Found)
		require.NotNil(t, resp.File)
		assert.Equal(t, created.ID, resp.File.ID)
	})

	t.Run("absent", func(t *testing.T) {
		link := ""
		resp, err := m.handleGetFileByLink(ctx, GetFileByLinkRequest{PublicLink: &link}, nil)
		require.NoError(t, err)
		assert.False(t, resp.Found)
		assert.Nil(t, resp.File)
	})

	t.Run("missing link", func(t *testing.T) {
		_, err := m.handleGetFileByLink(ctx, GetFileByLinkRequest{}, nil)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, FieldPublicLink, verr.Field)
		assert.Equal(t, RuleRequired, verr.Rule)
	})
}

func TestModule_handleGetFileStats(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	for i, size := range []int64{0, 1000} {
		meta := validMetadata()
		meta.PublicLink = string(rune('a' + i))
		meta.FileSize = size
		_, err := m.handleUploadFile(ctx, NewUploadFileRequest(meta), nil)
		require.NoError(t, err)
	}

	stats, err := m.handleGetFileStats(ctx, GetFileStatsRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalFiles)
	assert.Equal(t, int64(1000), stats.TotalSize)
}
