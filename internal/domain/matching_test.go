package domain

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestMatchSkills(t *testing.T) {
	tests := []struct {
		name        string
		required    []string
		held        []string
		wantMatched []string
		wantMissing []string
	}{
		{
			name:        "partial overlap",
			required:    []string{"CPR", "Manual Handling"},
			held:        []string{"CPR"},
			wantMatched: []string{"CPR"},
			wantMissing: []string{"Manual Handling"},
		},
		{
			name:        "case and whitespace insensitive",
			required:    []string{"cpr", " Medication Management "},
			held:        []string{"CPR", "medication management"},
			wantMatched: []string{"cpr", "Medication Management"},
			wantMissing: []string{},
		},
		{
			name:        "no required skills",
			required:    nil,
			held:        []string{"CPR"},
			wantMatched: []string{},
			wantMissing: []string{},
		},
		{
			name:        "duplicates collapsed",
			required:    []string{"CPR", "CPR", "Hoist"},
			held:        nil,
			wantMatched: []string{},
			wantMissing: []string{"CPR", "Hoist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, missing := MatchSkills(tt.required, tt.held)
			if !reflect.DeepEqual(matched, tt.wantMatched) {
				t.Errorf("matched = %v, want %v", matched, tt.wantMatched)
			}
			if !reflect.DeepEqual(missing, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", missing, tt.wantMissing)
			}
		})
	}
}

// matched and missing must partition the required set for any input.
func TestMatchSkillsPartition(t *testing.T) {
	required := []string{"CPR", "Manual Handling", "Autism Support", "Hoist"}
	held := []string{"cpr", "hoist", "First Aid"}

	matched, missing := MatchSkills(required, held)

	if len(matched)+len(missing) != len(required) {
		t.Fatalf("partition size %d+%d != %d", len(matched), len(missing), len(required))
	}
	seen := map[string]bool{}
	for _, s := range matched {
		seen[s] = true
	}
	for _, s := range missing {
		if seen[s] {
			t.Errorf("skill %q appears in both matched and missing", s)
		}
	}
}

func TestScoreCandidate(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name        string
		required    []string
		skills      []string
		wantScore   int
		wantQuality MatchQuality
	}{
		{"full match", []string{"CPR", "Hoist"}, []string{"CPR", "Hoist"}, 100, MatchHigh},
		{"half match", []string{"CPR", "Hoist"}, []string{"CPR"}, 50, MatchMedium},
		{"no match", []string{"CPR", "Hoist"}, nil, 0, MatchLow},
		{"one of three", []string{"CPR", "Hoist", "PEG Feeding"}, []string{"Hoist"}, 33, MatchLow},
		{"two of three rounds up", []string{"CPR", "Hoist", "PEG Feeding"}, []string{"CPR", "Hoist"}, 67, MatchMedium},
		{"no requirements", nil, nil, 100, MatchHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ScoreCandidate(tt.required, Employee{ID: uuid.New(), Skills: tt.skills}, true, th)
			if c.MatchScore != tt.wantScore {
				t.Errorf("MatchScore = %d, want %d", c.MatchScore, tt.wantScore)
			}
			if c.MatchQuality != tt.wantQuality {
				t.Errorf("MatchQuality = %q, want %q", c.MatchQuality, tt.wantQuality)
			}
		})
	}
}

func TestScoreCandidateKeepsUnavailable(t *testing.T) {
	c := ScoreCandidate([]string{"CPR"}, Employee{ID: uuid.New(), Skills: []string{"CPR"}}, false, DefaultThresholds())
	if c.IsAvailable {
		t.Error("candidate should be flagged unavailable, not dropped")
	}
	if c.MatchScore != 100 {
		t.Errorf("availability must not affect the score, got %d", c.MatchScore)
	}
}

func TestRankCandidatesDeterministicTieBreak(t *testing.T) {
	lo := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	hi := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	build := func(order []uuid.UUID) []StaffCandidate {
		out := make([]StaffCandidate, 0, len(order))
		for _, id := range order {
			out = append(out, StaffCandidate{Employee: Employee{ID: id}, MatchScore: 50})
		}
		return out
	}

	a := build([]uuid.UUID{hi, lo})
	b := build([]uuid.UUID{lo, hi})
	RankCandidates(a)
	RankCandidates(b)

	for i := range a {
		if a[i].Employee.ID != b[i].Employee.ID {
			t.Fatalf("rank order depends on input order at position %d", i)
		}
	}
	if a[0].Employee.ID != lo {
		t.Errorf("tie should break on employee id, got %s first", a[0].Employee.ID)
	}

	higher := StaffCandidate{Employee: Employee{ID: uuid.New()}, MatchScore: 90}
	c := append([]StaffCandidate{a[0], a[1]}, higher)
	RankCandidates(c)
	if c[0].MatchScore != 90 {
		t.Errorf("highest score should rank first, got %d", c[0].MatchScore)
	}
}
