package database

import (
	"context"
	"testing"
	"testing/fstest"

	"blogly/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)
	assert.Equal(t, 1, all[0].Version)
	assert.Equal(t, "000001_create_users_posts", all[0].String())
	assert.Contains(t, all[0].UpScript, "ON DELETE CASCADE")
	assert.Contains(t, all[0].DownScript, "DROP TABLE IF EXISTS posts")

	assert.NotNil(t, GetMigrationByVersion(1))
	assert.Nil(t, GetMigrationByVersion(999))
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000002_second.up.sql":   {Data: []byte("SELECT 2;")},
		"m/000002_second.down.sql": {Data: []byte("SELECT -2;")},
		"m/000001_first.up.sql":    {Data: []byte("SELECT 1;")},
		"m/000001_first.down.sql":  {Data: []byte("SELECT -1;")},
		"m/README.md":              {Data: []byte("ignored")},
		"m/noversion.up.sql":       {Data: []byte("ignored")},
	}

	loaded, err := LoadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 1, loaded[0].Version)
	assert.Equal(t, "second", loaded[1].Name)
	assert.Equal(t, "SELECT -2;", loaded[1].DownScript)
}

func TestLoadMigrations_MissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000001_first.up.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := LoadMigrations(fsys, "m")
	assert.ErrorContains(t, err, "down migration")
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000001_a.up.sql":   {Data: []byte("SELECT 1;")},
		"m/000001_a.down.sql": {Data: []byte("SELECT 1;")},
		"m/1_b.up.sql":        {Data: []byte("SELECT 1;")},
		"m/1_b.down.sql":      {Data: []byte("SELECT 1;")},
	}
	_, err := LoadMigrations(fsys, "m")
	assert.ErrorContains(t, err, "duplicate migration version")
}

func sqliteMigrations() []Migration {
	return []Migration{
		{
			Version:    1,
			Name:       "widgets",
			UpScript:   "CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);",
			DownScript: "DROP TABLE widgets;",
		},
		{
			Version:    2,
			Name:       "gadgets",
			UpScript:   "CREATE TABLE gadgets (id INTEGER PRIMARY KEY); CREATE INDEX idx_gadgets_id ON gadgets (id);",
			DownScript: "DROP TABLE gadgets;",
		},
	}
}

func TestRunMigrations_AppliesOnceAndRollsBack(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	registered := sqliteMigrations()

	require.NoError(t, runMigrations(ctx, db, registered))
	require.NoError(t, runMigrations(ctx, db, registered))

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, applied)
	assert.True(t, db.Migrator().HasTable("gadgets"))

	reverted, err := rollbackLast(ctx, db, registered, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, reverted)
	assert.False(t, db.Migrator().HasTable("gadgets"))
	assert.True(t, db.Migrator().HasTable("widgets"))

	err = rollbackMigration(ctx, db, registered, 2)
	assert.ErrorContains(t, err, "has not been applied")

	err = rollbackMigration(ctx, db, registered, 42)
	assert.ErrorContains(t, err, "not found")

	_, err = rollbackLast(ctx, db, registered, 0)
	assert.Error(t, err)
}

func TestRunMigrations_FailedScriptIsNotRecorded(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	bad := []Migration{{Version: 1, Name: "broken", UpScript: "CREATE TABLE (", DownScript: ""}}
	require.Error(t, runMigrations(ctx, db, bad))

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestRunMigrations_UnknownAppliedVersion(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, ensureMigrationLogTable(ctx, db))
	require.NoError(t, db.Create(&MigrationLog{Version: 77, Name: "from_the_future"}).Error)

	err := runMigrations(ctx, db, sqliteMigrations())
	assert.ErrorContains(t, err, "000077")
}

func TestGetAppliedMigrations_MissingTable(t *testing.T) {
	applied, err := NewMigrationStore(openSQLite(t)).GetAppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestPlanSchema(t *testing.T) {
	tests := []struct {
		mode, env       string
		runSQL, runAuto bool
		wantErr         bool
	}{
		{"", "development", true, true, false},
		{"hybrid", "production", true, false, false},
		{"sql", "development", true, false, false},
		{"auto", "test", false, true, false},
		{"auto", "staging", false, false, true},
		{"nope", "development", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode+"/"+tt.env, func(t *testing.T) {
			plan, err := planSchema(&config.Config{DBSchemaMode: tt.mode, Env: tt.env})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, plan.RunSQL)
			assert.Equal(t, tt.runAuto, plan.RunAuto)
		})
	}
}

func TestApplySchema_AutoMode(t *testing.T) {
	db := openSQLite(t)
	cfg := &config.Config{DBSchemaMode: SchemaModeAuto, Env: "test"}

	require.NoError(t, ApplySchema(context.Background(), db, cfg))
	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("posts"))

	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.False(t, status.WillRunSQL)
	assert.True(t, status.WillRunAutoMigrate)
	assert.Empty(t, status.PendingMigrations)
}

func TestGetSchemaStatus_ListsPending(t *testing.T) {
	db := openSQLite(t)
	cfg := &config.Config{DBSchemaMode: SchemaModeSQL, Env: "test"}

	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.True(t, status.WillRunSQL)
	assert.Len(t, status.PendingMigrations, len(GetMigrations()))
}

func TestPendingMigrations(t *testing.T) {
	registered := []Migration{{Version: 1, Name: "a"}, {Version: 2, Name: "b"}, {Version: 3, Name: "c"}}

	pending := pendingMigrations([]int{1, 3}, registered)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Version)

	assert.Empty(t, pendingMigrations([]int{1, 2, 3}, registered))
}
