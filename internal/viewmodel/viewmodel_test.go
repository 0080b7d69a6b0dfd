package viewmodel

import "testing"

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{10, "00:10"},
		{61, "01:01"},
		{599, "09:59"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{36000, "10:00:00"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.seconds); got != tt.want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestNewTimerFragment(t *testing.T) {
	f := NewTimerFragment(3, 10, 3)
	if f.Panic {
		t.Error("3 seconds left should not panic with threshold 3")
	}
	if f.Display != "00:03" {
		t.Errorf("Display %q, want 00:03", f.Display)
	}
	if !NewTimerFragment(2, 10, 3).Panic {
		t.Error("2 seconds left should panic with threshold 3")
	}
}
