package matchmaking

import (
	"strings"

	"github.com/linkora-app/linkora-backend/internal/domain"
)

// Scoring weights. Skills count double against interests; sharing an industry
// adds a flat bonus on top of the similarity component.
const (
	skillsWeight    = 2.0
	interestsWeight = 1.0
	similarityScale = 85.0
	industryBonus   = 15
	maxMatchScore   = 100
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	common := 0
	for v := range a {
		if _, ok := b[v]; ok {
			common++
		}
	}
	union := len(a) + len(b) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}

// MatchScore computes the 0-100 relevance of candidate for viewer. The score
// is deterministic: identical profiles always produce identical scores.
func MatchScore(viewer, candidate *domain.Profile) int {
	skillsSim := jaccard(toSet(viewer.Skills), toSet(candidate.Skills))
	interestsSim := jaccard(toSet(viewer.Interests), toSet(candidate.Interests))

	weighted := (skillsSim*skillsWeight + interestsSim*interestsWeight) / (skillsWeight + interestsWeight)
	score := int(weighted*similarityScale + 0.5)

	if viewer.Industry != nil && candidate.Industry != nil &&
		strings.TrimSpace(*viewer.Industry) != "" &&
		strings.EqualFold(strings.TrimSpace(*viewer.Industry), strings.TrimSpace(*candidate.Industry)) {
		score += industryBonus
	}

	if score > maxMatchScore {
		score = maxMatchScore
	}
	return score
}
