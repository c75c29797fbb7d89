package migrate

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/giftlist-backend/pkg/logger"
)

func TestMigrationsDirIsValid(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestEmbeddedMatchesDisk(t *testing.T) {
	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)
	inBinary, err := fs.Glob(Embedded(), "migrations/*.sql")
	require.NoError(t, err)
	assert.Len(t, inBinary, len(onDisk))
}

func TestGooseLoggerWritesThroughServiceLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	g := gooseLogger{ctx: logg.WithField(context.Background(), "component", "goose"), logg: logg}

	g.Printf("OK   %s (%s)\n", "20260105090000_create_members_table.sql", "1ms")
	assert.Contains(t, buf.String(), `"component":"goose"`)
	assert.Contains(t, buf.String(), "create_members_table")

	buf.Reset()
	g.Fatalf("failed to run migration: %v", "boom")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestMigrateToVersionRejectsBadVersion(t *testing.T) {
	assert.Error(t, MigrateToVersion(context.Background(), nil, "", "latest"))
}

func TestWishlistMigrationDeclaresConstraints(t *testing.T) {
	content := readMigration(t, "*_create_wishlist_items_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS wishlist_items",
		"REFERENCES members(id) ON DELETE CASCADE",
		"REFERENCES products(id) ON DELETE CASCADE",
		"CONSTRAINT wishlist_items_member_product_key UNIQUE (member_id, product_id)",
		"DROP TABLE IF EXISTS wishlist_items",
	}
	for _, sub := range checks {
		assert.Contains(t, content, sub)
	}
}

func TestMembersMigrationHasUniqueEmail(t *testing.T) {
	content := readMigration(t, "*_create_members_table.sql")
	assert.Contains(t, content, "CONSTRAINT members_email_key UNIQUE (email)")
	assert.Contains(t, content, "password_hash TEXT NOT NULL")
}

func TestProductsMigrationUsesNumericPrice(t *testing.T) {
	content := readMigration(t, "*_create_products_table.sql")
	assert.Contains(t, content, "price      NUMERIC(12,2) NOT NULL")
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Product SKU!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_product_sku.sql"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "-- +goose Down")
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "!!!")
	assert.Error(t, err)
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateDir(dir))

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_no_down.sql"), []byte("-- +goose Up\n"), 0o644))
	assert.Error(t, ValidateDir(dir))

	dir = t.TempDir()
	body := []byte("-- +goose Up\n-- +goose Down\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_a.sql"), body, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_b.sql"), body, 0o644))
	assert.Error(t, ValidateDir(dir))
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no migration matching %s", pattern)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return string(data)
}

func TestCreateSQLMigrationBumpsTakenVersion(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := createAt(dir, "add sku", now)
	require.NoError(t, err)
	second, err := createAt(dir, "add price index", now)
	require.NoError(t, err)

	assert.Equal(t, "20260301120000_add_sku.sql", filepath.Base(first))
	assert.Equal(t, "20260301120001_add_price_index.sql", filepath.Base(second))
	require.NoError(t, ValidateDir(dir))
}

func TestValidateDirAnnotationOrder(t *testing.T) {
	cases := map[string]string{
		"down_first":   "-- +goose Down\n-- +goose Up\n",
		"open_block":   "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n-- +goose Down\n",
		"stray_end":    "-- +goose Up\n-- +goose StatementEnd\n-- +goose Down\n",
		"double_up":    "-- +goose Up\n-- +goose Up\n-- +goose Down\n",
		"unterminated": "-- +goose Up\n-- +goose Down\n-- +goose StatementBegin\nSELECT 1;\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_"+name+".sql"), []byte(body), 0o644))
			assert.Error(t, ValidateDir(dir))
		})
	}
}

func TestValidateDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad.sql"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_no_up.sql"), []byte("-- +goose Down\n"), 0o644))

	err := ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad.sql")
	assert.Contains(t, err.Error(), "20260101000000_no_up.sql")
}
