package internal

import (
	"testing"
	"time"
)

func TestCocoaTime_Epoch(t *testing.T) {
	got := CocoaTime(0)
	want := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CocoaTime(0) = %v, want %v", got, want)
	}
}

func TestCocoaTime_Offset(t *testing.T) {
	// 700000000 seconds past the Cocoa epoch.
	got := CocoaTime(700000000)
	want := time.Date(2023, 3, 8, 20, 26, 40, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CocoaTime(700000000) = %v, want %v", got, want)
	}
}

func TestFormatCocoa(t *testing.T) {
	tests := []struct {
		ts   float64
		want string
	}{
		{0, "Unknown"},
		{700000000, "2023-03-08 20:26:40"},
	}
	for _, tt := range tests {
		if got := FormatCocoa(tt.ts); got != tt.want {
			t.Errorf("FormatCocoa(%v) = %q, want %q", tt.ts, got, tt.want)
		}
	}
}
