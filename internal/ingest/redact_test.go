package ingest

import (
	"strings"
	"testing"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantText    string
		wantMarkers []string
	}{
		{
			name:        "clean text untouched",
			text:        "Revenue grew 12% year over year.",
			wantText:    "Revenue grew 12% year over year.",
			wantMarkers: nil,
		},
		{
			name:        "phone number",
			text:        "Call investor relations at 408-555-0134 for details.",
			wantText:    "Call investor relations at [PHONE_REDACTED] for details.",
			wantMarkers: []string{MarkerPhone},
		},
		{
			name:        "phone with area code parens",
			text:        "Reach us at (408) 555-0134.",
			wantText:    "Reach us at [PHONE_REDACTED].",
			wantMarkers: []string{MarkerPhone},
		},
		{
			name:        "email address",
			text:        "Contact ir@example.com with questions.",
			wantText:    "Contact [EMAIL_REDACTED] with questions.",
			wantMarkers: []string{MarkerEmail},
		},
		{
			name:        "ssn",
			text:        "Taxpayer ID 123-45-6789 on file.",
			wantText:    "Taxpayer ID [SSN_REDACTED] on file.",
			wantMarkers: []string{MarkerSSN},
		},
		{
			name:        "multiple kinds sorted markers",
			text:        "Email ir@example.com or call 408-555-0134.",
			wantText:    "Email [EMAIL_REDACTED] or call [PHONE_REDACTED].",
			wantMarkers: []string{MarkerEmail, MarkerPhone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotText, gotMarkers := Redact(tt.text)
			if gotText != tt.wantText {
				t.Errorf("expected %q, got %q", tt.wantText, gotText)
			}
			if len(gotMarkers) != len(tt.wantMarkers) {
				t.Fatalf("expected markers %v, got %v", tt.wantMarkers, gotMarkers)
			}
			for i := range tt.wantMarkers {
				if gotMarkers[i] != tt.wantMarkers[i] {
					t.Errorf("expected markers %v, got %v", tt.wantMarkers, gotMarkers)
				}
			}
		})
	}
}

func TestRedact_NoRawPIILeaks(t *testing.T) {
	text := "SSN 123-45-6789, phone 212-555-0199, email legal@corp.example.org."
	redacted, markers := Redact(text)

	for _, leaked := range []string{"123-45-6789", "212-555-0199", "legal@corp.example.org"} {
		if strings.Contains(redacted, leaked) {
			t.Errorf("raw PII leaked through redaction: %s", leaked)
		}
	}
	if len(markers) != 3 {
		t.Errorf("expected 3 marker kinds, got %v", markers)
	}
}
