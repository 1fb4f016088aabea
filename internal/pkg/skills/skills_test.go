package skills

import (
	"reflect"
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name         string
		candidate    []string
		required     []string
		wantMatching []string
		wantMissing  []string
	}{
		{
			name:         "partial overlap",
			candidate:    []string{"Go", "SQL", "Kubernetes"},
			required:     []string{"Go", "Terraform", "SQL"},
			wantMatching: []string{"Go", "SQL"},
			wantMissing:  []string{"Terraform"},
		},
		{
			name:         "case and whitespace insensitive",
			candidate:    []string{" go ", "PYTHON"},
			required:     []string{"Go", "python", "Rust"},
			wantMatching: []string{"go", "PYTHON"},
			wantMissing:  []string{"Rust"},
		},
		{
			name:         "no overlap",
			candidate:    []string{"Figma"},
			required:     []string{"Go", "SQL"},
			wantMatching: []string{},
			wantMissing:  []string{"Go", "SQL"},
		},
		{
			name:         "empty candidate",
			candidate:    nil,
			required:     []string{"Go"},
			wantMatching: []string{},
			wantMissing:  []string{"Go"},
		},
		{
			name:         "empty required",
			candidate:    []string{"Go"},
			required:     nil,
			wantMatching: []string{},
			wantMissing:  []string{},
		},
		{
			name:         "duplicates collapse",
			candidate:    []string{"Go", "go", "Go"},
			required:     []string{"Go", "GO", "SQL", "sql"},
			wantMatching: []string{"Go"},
			wantMissing:  []string{"SQL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.candidate, tt.required)
			if !reflect.DeepEqual(got.Matching, tt.wantMatching) {
				t.Fatalf("Match matching = %v, want %v", got.Matching, tt.wantMatching)
			}
			if !reflect.DeepEqual(got.Missing, tt.wantMissing) {
				t.Fatalf("Match missing = %v, want %v", got.Missing, tt.wantMissing)
			}
		})
	}
}

// Matching and missing together must cover the required set exactly, with
// matching drawn from the candidate set and missing disjoint from it.
func TestMatchPartitionsRequired(t *testing.T) {
	candidate := []string{"Go", "SQL", "Docker", "React"}
	required := []string{"go", "Terraform", "docker", "AWS"}

	got := Match(candidate, required)
	if len(got.Matching)+len(got.Missing) != 4 {
		t.Fatalf("partition size = %d+%d, want 4", len(got.Matching), len(got.Missing))
	}

	again := Match(candidate, required)
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("Match is not idempotent: %v vs %v", got, again)
	}
}
