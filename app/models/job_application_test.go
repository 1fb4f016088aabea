package models

import "testing"

func TestValidApplicationStatus(t *testing.T) {
	tests := []struct {
		status ApplicationStatus
		want   bool
	}{
		{ApplicationPending, true},
		{ApplicationSubmitted, true},
		{ApplicationViewed, true},
		{ApplicationRejected, true},
		{ApplicationAccepted, true},
		{ApplicationStatus(""), false},
		{ApplicationStatus("pending"), false},
		{ApplicationStatus("WITHDRAWN"), false},
	}

	for _, tt := range tests {
		if got := ValidApplicationStatus(tt.status); got != tt.want {
			t.Errorf("ValidApplicationStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
