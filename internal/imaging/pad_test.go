package imaging

import "testing"

func TestParsePad(t *testing.T) {
	tests := []struct {
		in     string
		want   uint8
		wantOK bool
	}{
		{"black", 0, true},
		{"White", 255, true},
		{"#000000", 0, true},
		{"#ffffff", 255, true},
		{"#808080", 128, true},
		{"#fff", 255, true},
		{"#ff0000", 76, true},
		{"grey", 255, false},
		{"#zzzzzz", 255, false},
		{"", 255, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePad(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePad(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
