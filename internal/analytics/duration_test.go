package analytics

import "testing"

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		token   string
		seconds int
		ok      bool
	}{
		{"PT45S", 45, true},
		{"PT1M30S", 90, true},
		{"PT1M", 60, true},
		{"PT10M", 600, true},
		{"PT1H", 3600, true},
		{"PT2H15M30S", 8130, true},
		{"", 0, false},
		{"PT", 0, false},
		{"1M30S", 0, false},
		{"not-a-duration", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			seconds, ok := ParseDurationSeconds(tt.token)
			if seconds != tt.seconds || ok != tt.ok {
				t.Errorf("ParseDurationSeconds(%q) = (%d, %v), want (%d, %v)", tt.token, seconds, ok, tt.seconds, tt.ok)
			}
		})
	}
}

func TestIsShortForm(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"45 seconds is a short", "PT45S", true},
		{"exactly 60 seconds is a short", "PT1M", true},
		{"90 seconds is long-form", "PT1M30S", false},
		{"hour-long video is long-form", "PT1H", false},
		{"empty token fails safe to long-form", "", false},
		{"malformed token fails safe to long-form", "1 minute", false},
		{"bare PT fails safe to long-form", "PT", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsShortForm(tt.token); got != tt.want {
				t.Errorf("IsShortForm(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
