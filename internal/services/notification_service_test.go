package services

import (
	"testing"
)

func TestIsCountNotificationWorthy(t *testing.T) {
	tests := []struct {
		count    int64
		expected bool
	}{
		{1, false},
		{4, false},
		{5, true},
		{6, false},
		{10, true},
		{25, true},
		{50, true},
		{75, true},
		{99, false},
		{100, true},
		{200, true},
		{300, true},
		{400, true},
		{500, true},
		{600, false},
		{750, true},
		{999, false},
		{1000, true},
		{1001, false},
		{1500, false},
		{2000, true},
		{3000, true},
		{10000, true},
		{10001, false},
	}

	for _, tt := range tests {
		if got := IsCountNotificationWorthy(tt.count); got != tt.expected {
			t.Errorf("IsCountNotificationWorthy(%d) = %v, expected %v", tt.count, got, tt.expected)
		}
	}
}
