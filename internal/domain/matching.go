package domain

import (
	"bytes"
	"sort"
	"strings"
)

// StaffCandidate is a scored pairing of an employee against an
// appointment's skill requirements. MatchedSkills and MissingSkills
// partition the appointment's required skills: their union is the required
// set and their intersection is empty.
type StaffCandidate struct {
	Employee      Employee     `json:"employee"`
	MatchScore    int          `json:"match_score"`
	MatchQuality  MatchQuality `json:"match_quality"`
	MatchedSkills []string     `json:"matched_skills"`
	MissingSkills []string     `json:"missing_skills"`

	// IsAvailable mirrors the employee's availability for the appointment's
	// window. Unavailable candidates stay in the list for visibility;
	// filtering them out is a caller policy.
	IsAvailable bool `json:"is_available"`
}

// Thresholds are the score cut points separating match-quality tiers:
// score >= High is high quality, score >= Medium is medium, below is low.
type Thresholds struct {
	High   int
	Medium int
}

// DefaultThresholds are the cut points used when none are configured.
func DefaultThresholds() Thresholds { return Thresholds{High: 80, Medium: 50} }

// QualityFor maps a score onto its tier.
func (t Thresholds) QualityFor(score int) MatchQuality {
	switch {
	case score >= t.High:
		return MatchHigh
	case score >= t.Medium:
		return MatchMedium
	default:
		return MatchLow
	}
}

// MatchSkills partitions required into the skills the employee holds and
// the skills they lack. Comparison is case-insensitive and ignores
// surrounding whitespace; returned entries keep the spelling of the
// required list. Duplicate required entries are collapsed.
func MatchSkills(required, held []string) (matched, missing []string) {
	have := make(map[string]struct{}, len(held))
	for _, s := range held {
		have[normSkill(s)] = struct{}{}
	}

	matched = []string{}
	missing = []string{}
	seen := make(map[string]struct{}, len(required))
	for _, s := range required {
		key := normSkill(s)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := have[key]; ok {
			matched = append(matched, strings.TrimSpace(s))
		} else {
			missing = append(missing, strings.TrimSpace(s))
		}
	}
	return matched, missing
}

// ScoreCandidate scores one employee against an appointment's required
// skills. The score is the integer percentage of required skills the
// employee holds; an appointment with no skill requirements scores every
// candidate 100.
func ScoreCandidate(required []string, emp Employee, available bool, th Thresholds) StaffCandidate {
	matched, missing := MatchSkills(required, emp.Skills)

	score := 100
	if total := len(matched) + len(missing); total > 0 {
		score = (len(matched)*100 + total/2) / total
	}

	emp.IsAvailable = available
	return StaffCandidate{
		Employee:      emp,
		MatchScore:    score,
		MatchQuality:  th.QualityFor(score),
		MatchedSkills: matched,
		MissingSkills: missing,
		IsAvailable:   available,
	}
}

// RankCandidates orders candidates by score descending. Ties break on
// employee id so that repeated calls with identical inputs produce an
// identical order.
func RankCandidates(cands []StaffCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].MatchScore != cands[j].MatchScore {
			return cands[i].MatchScore > cands[j].MatchScore
		}
		return bytes.Compare(cands[i].Employee.ID[:], cands[j].Employee.ID[:]) < 0
	})
}

func normSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
