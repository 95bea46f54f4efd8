package sysmon

import (
	"strings"
	"testing"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestStats_String(t *testing.T) {
	s := Stats{CPUPercent: 12.34, MemPercent: 56.78}
	got := s.String()
	if !strings.Contains(got, "12.3") || !strings.Contains(got, "56.8") {
		t.Errorf("String() = %q, want both percentages", got)
	}
}
