package qdrant

import (
	"testing"

	pb "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

func TestLobbyVector(t *testing.T) {
	tests := []struct {
		name     string
		mmrs     []int
		expected []float32
	}{
		{
			name:     "empty lobby",
			mmrs:     nil,
			expected: make([]float32, VectorSize),
		},
		{
			name:     "sorted descending and scaled",
			mmrs:     []int{2500, 3000, 1000},
			expected: append([]float32{0.6, 0.5, 0.2}, make([]float32, VectorSize-3)...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams := make([]entities.Team, len(tt.mmrs))
			for i, mmr := range tt.mmrs {
				teams[i].MMR = mmr
			}
			got := LobbyVector(teams)
			require.Len(t, got, VectorSize)
			assert.InDeltaSlice(t, tt.expected, got, 1e-6)
		})
	}
}

func TestLobbyVector_TruncatesLargeLobbies(t *testing.T) {
	teams := make([]entities.Team, VectorSize+3)
	for i := range teams {
		teams[i].MMR = 1000 + i*100
	}

	got := LobbyVector(teams)
	require.Len(t, got, VectorSize)
	// The three lowest rated teams are dropped.
	assert.InDelta(t, float32(2400)/5000, got[0], 1e-6)
	assert.InDelta(t, float32(1300)/5000, got[VectorSize-1], 1e-6)
}

func TestLobbyVector_OrderIndependent(t *testing.T) {
	a := []entities.Team{{MMR: 2000}, {MMR: 2700}}
	b := []entities.Team{{MMR: 2700}, {MMR: 2000}}
	assert.Equal(t, LobbyVector(a), LobbyVector(b))
}

func TestPointID(t *testing.T) {
	id := PointID("abc")
	assert.Equal(t, id, PointID("abc"), "stable for the same hash")
	assert.NotEqual(t, id, PointID("abd"))
	assert.Len(t, id, 36)
}

func TestScoredPointsToLobbies(t *testing.T) {
	points := []*pb.ScoredPoint{
		{
			Score: 0.25,
			Payload: map[string]*pb.Value{
				"hash":         {Kind: &pb.Value_StringValue{StringValue: "deadbeef"}},
				"team_count":   {Kind: &pb.Value_IntegerValue{IntegerValue: 6}},
				"own_team_mmr": {Kind: &pb.Value_IntegerValue{IntegerValue: 2800}},
				"recorded_at":  {Kind: &pb.Value_StringValue{StringValue: "2026-01-02T10:11:00Z"}},
			},
		},
		{Score: 1},
	}

	lobbies := scoredPointsToLobbies(points)
	require.Len(t, lobbies, 2)
	assert.Equal(t, "deadbeef", lobbies[0].Hash)
	assert.Equal(t, float32(0.25), lobbies[0].Score)
	assert.Equal(t, 6, lobbies[0].TeamCount)
	assert.Equal(t, 2800, lobbies[0].OwnTeamMMR)
	assert.Equal(t, "2026-01-02T10:11:00Z", lobbies[0].RecordedAt)
	assert.Empty(t, lobbies[1].Hash)
}
