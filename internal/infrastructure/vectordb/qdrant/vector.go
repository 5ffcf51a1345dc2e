package qdrant

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

const (
	// VectorSize is the number of team slots in a lobby vector. Lobbies with
	// more teams keep only the highest rated ones.
	VectorSize = 12

	// mmrScale maps MMR values into roughly [0, 1].
	mmrScale = 5000.0
)

// pointNamespace derives stable point ids from match hashes.
var pointNamespace = uuid.MustParse("5d1c3b52-8f0e-4d4b-9a57-0f7f3c8a2e61")

// LobbyVector describes a lobby by the MMR of its teams, highest first,
// padded with zeros to VectorSize.
func LobbyVector(teams []entities.Team) []float32 {
	mmrs := make([]int, 0, len(teams))
	for _, t := range teams {
		mmrs = append(mmrs, t.MMR)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(mmrs)))

	vec := make([]float32, VectorSize)
	for i := 0; i < len(mmrs) && i < VectorSize; i++ {
		vec[i] = float32(float64(mmrs[i]) / mmrScale)
	}
	return vec
}

// PointID returns the point id stored for a match hash.
func PointID(hash string) string {
	return uuid.NewSHA1(pointNamespace, []byte(hash)).String()
}
