// Package ranking orders catalog job roles by how many of their required skills a candidate holds.
package ranking

import (
	"sort"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// RankRoles scores every catalog role by the size of the intersection between its
// required skills and skills, then sorts by that count descending. Ties keep catalog
// order. Zero-match roles are kept at the tail.
func RankRoles(skills map[string]struct{}, catalog []types.Role) []types.RankedRole {
	ranked := make([]types.RankedRole, 0, len(catalog))
	for _, role := range catalog {
		matched := matchedSkills(role.RequiredSkills, skills)
		ranked = append(ranked, types.RankedRole{
			Name:          role.Name,
			MatchCount:    len(matched),
			RequiredCount: len(role.RequiredSkills),
			MatchedSkills: matched,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchCount > ranked[j].MatchCount
	})

	return ranked
}

// RankRolesFromList is RankRoles for a skill list
func RankRolesFromList(skills []string, catalog []types.Role) []types.RankedRole {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return RankRoles(set, catalog)
}

// RoleNames projects ranked roles to their names, preserving order
func RoleNames(ranked []types.RankedRole) []string {
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Name
	}
	return names
}

// Top returns at most n role names from the head of ranked
func Top(ranked []types.RankedRole, n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return RoleNames(ranked[:n])
}

// matchedSkills returns required skills present in held, in required order, counting repeats once
func matchedSkills(required []string, held map[string]struct{}) []string {
	matched := make([]string, 0)
	seen := make(map[string]bool, len(required))
	for _, skill := range required {
		if seen[skill] {
			continue
		}
		seen[skill] = true
		if _, ok := held[skill]; ok {
			matched = append(matched, skill)
		}
	}
	return matched
}
