package matchmaking

import (
	"sort"
	"strings"

	"github.com/linkora-app/linkora-backend/internal/domain"
)

// ApplyFilters narrows a candidate list by the request filters. Empty filter
// values impose no constraint. The input slice is not modified.
func ApplyFilters(candidates []domain.Candidate, filters domain.MatchmakingFilters) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !matchesIndustry(&c, filters.Industry) {
			continue
		}
		if !matchesSkills(&c, filters.Skills) {
			continue
		}
		if !matchesExperience(&c, filters.ExperienceLevel) {
			continue
		}
		if filters.Goal != "" && !c.Goal.Compatible(filters.Goal) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesIndustry(c *domain.Candidate, industry string) bool {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return true
	}
	return c.Industry != nil && strings.EqualFold(strings.TrimSpace(*c.Industry), industry)
}

// matchesSkills keeps a candidate when its skill list intersects the
// requested one. An empty request list keeps everyone.
func matchesSkills(c *domain.Candidate, skills []string) bool {
	if len(skills) == 0 {
		return true
	}
	have := toSet(c.Skills)
	for _, want := range skills {
		if _, ok := have[strings.ToLower(strings.TrimSpace(want))]; ok {
			return true
		}
	}
	return false
}

func matchesExperience(c *domain.Candidate, level string) bool {
	level = strings.TrimSpace(level)
	if level == "" {
		return true
	}
	return c.ExperienceLevel != nil && strings.EqualFold(strings.TrimSpace(*c.ExperienceLevel), level)
}

// SortByScore orders candidates by match score descending. The sort is stable
// so identical inputs always produce identical output.
func SortByScore(candidates []domain.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})
}
