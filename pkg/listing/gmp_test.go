package listing

import "testing"

func TestParseGMPNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"₹1,234", "1234"},
		{"120", "120"},
		{"+120", "120"},
		{"-5", "-5"},
		{"12.5%", "12.5"},
		{"↑120", "120"},
		{"▼ 45", "45"},
		{"$ 3,000.50", "3000.5"},
		{"0", "0"},
	}
	for _, tt := range tests {
		got := ParseGMP(tt.input)
		if got == nil {
			t.Errorf("ParseGMP(%q) = nil, expected %s", tt.input, tt.want)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseGMP(%q) = %s, expected %s", tt.input, got.String(), tt.want)
		}
	}
}

func TestParseGMPNoValue(t *testing.T) {
	for _, input := range []string{"", "—", "-", "--", "+", "N/A", "TBA", "₹", "%"} {
		if got := ParseGMP(input); got != nil {
			t.Errorf("ParseGMP(%q) = %s, expected nil", input, got.String())
		}
	}
}
