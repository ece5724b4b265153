package main

import "testing"

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0.5, false},
		{"easy", 0, false},
		{"normal", 0.5, false},
		{"hard", 0.85, false},
		{"0.3", 0.3, false},
		{"1", 1, false},
		{"1.5", 0, true},
		{"-0.1", 0, true},
		{"brutal", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDifficulty(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, expected %v", got, tt.want)
			}
		})
	}
}
