package csvimport_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deidaraiorek/csvcharts/internal/csvimport"
	"github.com/deidaraiorek/csvcharts/internal/storage"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "publish_location_count.csv",
		"\ufeff地区,数量\n广东,120\n北京\n上海,80,extra\n")

	table, err := csvimport.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "publish_location_count", table.Name)
	assert.Equal(t, []string{"地区", "数量"}, table.Header)
	assert.Equal(t, [][]string{{"广东", "120"}, {"北京", ""}, {"上海", "80"}}, table.Rows)
}

func TestReadFileEmpty(t *testing.T) {
	dir := t.TempDir()

	_, err := csvimport.ReadFile(writeFile(t, dir, "empty.csv", ""))
	assert.True(t, errors.Is(err, csvimport.ErrEmptyFile))
}

func TestReadFileHeaderOnly(t *testing.T) {
	table, err := csvimport.ReadFile(writeFile(t, t.TempDir(), "header.csv", "a,b\n"))
	require.NoError(t, err)

	assert.Equal(t, "header", table.Name)
	assert.Equal(t, []string{"a", "b"}, table.Header)
	assert.Empty(t, table.Rows)
}

func TestImportDir(t *testing.T) {
	csvDir := t.TempDir()
	writeFile(t, csvDir, "recommend_reason_count.csv", "recommend_reason,count\n很棒的视频,3\n精彩内容,2\n")
	writeFile(t, csvDir, "theme_name_data.csv", "theme_name\n游戏\n知识\n游戏\n")
	writeFile(t, csvDir, "empty.csv", "")
	writeFile(t, csvDir, "notes.txt", "ignored")

	dbPath := filepath.Join(t.TempDir(), "data.db")
	w, err := storage.NewWriter(dbPath, 100)
	require.NoError(t, err)

	summary, err := csvimport.New(w, zap.NewNop(), 2).ImportDir(context.Background(), csvDir)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, 2, summary.Tables)
	assert.Equal(t, 5, summary.Rows)
	assert.Equal(t, []string{"empty.csv"}, summary.Skipped)

	r, err := storage.NewSource(dbPath).Open(context.Background())
	require.NoError(t, err)
	defer r.Close()

	reasons, err := r.TextColumn(context.Background(), "recommend_reason_count", "recommend_reason")
	require.NoError(t, err)
	assert.Equal(t, []string{"很棒的视频", "精彩内容"}, reasons)
}

func TestImportDirHeaderOnlyCreatesEmptyTable(t *testing.T) {
	csvDir := t.TempDir()
	writeFile(t, csvDir, "theme_name_data.csv", "theme_name\n")

	dbPath := filepath.Join(t.TempDir(), "data.db")
	w, err := storage.NewWriter(dbPath, 0)
	require.NoError(t, err)

	summary, err := csvimport.New(w, zap.NewNop(), 1).ImportDir(context.Background(), csvDir)
	require.NoError(t, err)

	count, err := w.RowCount(context.Background(), "theme_name_data")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, 1, summary.Tables)
	assert.Zero(t, summary.Rows)
	assert.Empty(t, summary.Skipped)
	assert.Zero(t, count)

	r, err := storage.NewSource(dbPath).Open(context.Background())
	require.NoError(t, err)
	defer r.Close()

	groups, err := r.GroupCounts(context.Background(), "theme_name_data", "theme_name")
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestImportDirMissing(t *testing.T) {
	w, err := storage.NewWriter(filepath.Join(t.TempDir(), "data.db"), 0)
	require.NoError(t, err)
	defer w.Close()

	_, err = csvimport.New(w, zap.NewNop(), 0).ImportDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
