package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/hunt-tracker/internal/domain/attributes"
	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/domain/mocks"
	"github.com/ersonp/hunt-tracker/internal/domain/ports"
	"github.com/ersonp/hunt-tracker/internal/domain/services"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/xmlattr"
)

func fixtureTeams() []entities.Team {
	return []entities.Team{
		{MMR: 2500, NumPlayers: 1, OwnTeam: true, Players: []entities.Player{
			{Name: "Me", MMR: 2500, ProfileID: 7, KilledByMe: 1},
		}},
		{MMR: 2800, NumPlayers: 2, Players: []entities.Player{
			{Name: "Hunter", MMR: 2750, ProfileID: 8, KilledMe: 1},
			{Name: "Partner", MMR: 2850, ProfileID: 9},
		}},
	}
}

// writeAttributes encodes teams into an attributes.xml file in dir.
func writeAttributes(t *testing.T, dir string, teams []entities.Team) string {
	t.Helper()
	doc := xmlattr.NewElement(xmlattr.DefaultRootName)
	attributes.WriteTeams(doc, teams)

	path := filepath.Join(dir, "attributes.xml")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = doc.WriteTo(f)
	require.NoError(t, err)
	return path
}

type snapshotFixture struct {
	handler *SnapshotHandler
	store   *mocks.MatchStore
	archive *mocks.Archive
	index   *mocks.LobbyIndex
}

func newSnapshotFixture(bounds attributes.BoundStrategy) *snapshotFixture {
	store := mocks.NewMatchStore()
	archive := mocks.NewArchive()
	index := &mocks.LobbyIndex{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	matchSvc := services.NewMatchService(store, archive, index, logger)

	return &snapshotFixture{
		handler: NewSnapshotHandler(matchSvc, services.NewReportService(), bounds, 7),
		store:   store,
		archive: archive,
		index:   index,
	}
}

func TestSkipReason_String(t *testing.T) {
	tests := []struct {
		reason   SkipReason
		expected string
	}{
		{NotSkipped, "recorded"},
		{SkipMalformed, "malformed"},
		{SkipInvalid, "invalid"},
		{SkipEmpty, "empty"},
		{SkipSeen, "seen"},
		{SkipReason(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reason.String())
		})
	}
}

func TestSnapshotHandler_HandleFile_Records(t *testing.T) {
	for _, bounds := range []attributes.BoundStrategy{attributes.BoundProbe, attributes.BoundDeclared} {
		t.Run(bounds.String(), func(t *testing.T) {
			f := newSnapshotFixture(bounds)
			path := writeAttributes(t, t.TempDir(), fixtureTeams())

			result, err := f.handler.HandleFile(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, NotSkipped, result.Skipped)
			assert.Equal(t, fixtureTeams(), result.Teams)

			require.NotNil(t, result.Record)
			assert.False(t, result.Record.Duplicate)
			assert.Len(t, f.store.Matches, 1)
			assert.Equal(t, 1, f.index.UpsertCallCount)

			require.NotNil(t, result.Report.User)
			assert.Equal(t, "Me", result.Report.User.Name)
			require.Len(t, result.Report.KilledMe, 1)
			assert.Equal(t, "Hunter", result.Report.KilledMe[0].Name)
			assert.Equal(t, 1, f.handler.Seen())
		})
	}
}

func TestSnapshotHandler_HandleFile_SkipsSeen(t *testing.T) {
	f := newSnapshotFixture(attributes.BoundProbe)
	path := writeAttributes(t, t.TempDir(), fixtureTeams())

	_, err := f.handler.HandleFile(context.Background(), path)
	require.NoError(t, err)

	result, err := f.handler.HandleFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, SkipSeen, result.Skipped)
	assert.Nil(t, result.Record)
	assert.Equal(t, 1, f.store.HasHashCallCount, "seen snapshots do not reach the store")
}

func TestSnapshotHandler_HandleFile_DuplicateFromStore(t *testing.T) {
	f := newSnapshotFixture(attributes.BoundProbe)
	path := writeAttributes(t, t.TempDir(), fixtureTeams())

	hash, err := entities.HashTeams(fixtureTeams())
	require.NoError(t, err)
	f.store.Matches[hash] = entities.MatchSummary{Hash: hash}

	result, err := f.handler.HandleFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, NotSkipped, result.Skipped)
	require.NotNil(t, result.Record)
	assert.True(t, result.Record.Duplicate)
	assert.Zero(t, f.archive.SaveCallCount)
}

func TestSnapshotHandler_HandleFile_Skips(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected SkipReason
		hasErr   bool
	}{
		{
			name:     "truncated document",
			content:  `<Attributes><Attr name="MissionBagTeam_0_mmr" value="25`,
			expected: SkipMalformed,
			hasErr:   true,
		},
		{
			name:     "empty document",
			content:  `<Attributes></Attributes>`,
			expected: SkipEmpty,
		},
		{
			name: "bad value",
			content: `<Attributes
				MissionBagTeam_0_handicap="0"
				MissionBagTeam_0_isinvite="false"
				MissionBagTeam_0_mmr="high"
				MissionBagTeam_0_numplayers="0"
				MissionBagTeam_0_ownteam="true"/>`,
			expected: SkipInvalid,
			hasErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSnapshotFixture(attributes.BoundProbe)
			path := filepath.Join(t.TempDir(), "attributes.xml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			result, err := f.handler.HandleFile(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Skipped)
			if tt.hasErr {
				assert.Error(t, result.Err)
			}
			assert.Zero(t, f.store.SaveMatchCallCount)
		})
	}
}

func TestSnapshotHandler_HandleFile_DeclaredMissingCountIsInvalid(t *testing.T) {
	f := newSnapshotFixture(attributes.BoundDeclared)
	path := filepath.Join(t.TempDir(), "attributes.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<Attributes></Attributes>`), 0o644))

	result, err := f.handler.HandleFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, SkipInvalid, result.Skipped)

	var missing *attributes.MissingAttributeError
	assert.True(t, errors.As(result.Err, &missing))
}

func TestSnapshotHandler_HandleFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		f := newSnapshotFixture(attributes.BoundProbe)
		_, err := f.handler.HandleFile(context.Background(), filepath.Join(t.TempDir(), "nope.xml"))
		require.Error(t, err)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newSnapshotFixture(attributes.BoundProbe)
		f.store.Err = errors.New("database is locked")
		path := writeAttributes(t, t.TempDir(), fixtureTeams())

		_, err := f.handler.HandleFile(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "recording match")
		assert.Zero(t, f.handler.Seen(), "failed snapshots are retried")
	})
}

func TestParseFile(t *testing.T) {
	path := writeAttributes(t, t.TempDir(), fixtureTeams())

	teams, err := ParseFile(path, attributes.BoundProbe)
	require.NoError(t, err)
	assert.Equal(t, fixtureTeams(), teams)
}

// Ensure the mocks satisfy the ports they stand in for.
var (
	_ ports.MatchStore = (*mocks.MatchStore)(nil)
	_ ports.Archive    = (*mocks.Archive)(nil)
	_ ports.LobbyIndex = (*mocks.LobbyIndex)(nil)
)
