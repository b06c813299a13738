package cmd

import "testing"

func TestParseClueCountRange(t *testing.T) {
	tests := []struct {
		input    string
		min, max int
		wantErr  bool
	}{
		{"32", 32, 32, false},
		{"28:32", 28, 32, false},
		{" 28 : 32 ", 28, 32, false},
		{"17:17", 17, 17, false},
		{"32:28", 0, 0, true},
		{"abc", 0, 0, true},
		{"28:bad", 0, 0, true},
		{"1:2:3", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			min, max, err := parseClueCountRange(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseClueCountRange(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && (min != tt.min || max != tt.max) {
				t.Errorf("parseClueCountRange(%q) = %d, %d, want %d, %d", tt.input, min, max, tt.min, tt.max)
			}
		})
	}
}
