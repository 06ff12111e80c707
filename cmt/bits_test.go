package cmt

import "testing"

func TestBitLength32(t *testing.T) {
	tests := []struct {
		num  uint32
		want uint32
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{1 << 14, 15},
		{(1 << 14) + 1, 15},
	}
	for _, tt := range tests {
		if got := BitLength32(tt.num); got != tt.want {
			t.Errorf("BitLength32(%d) = %d, want %d", tt.num, got, tt.want)
		}
	}
}

func TestLog2Uint32(t *testing.T) {
	tests := []struct {
		num  uint32
		want uint32
	}{
		{1, 0},
		{2, 1},
		{3, 1},
		{16, 4},
		{1 << 30, 30},
	}
	for _, tt := range tests {
		if got := Log2Uint32(tt.num); got != tt.want {
			t.Errorf("Log2Uint32(%d) = %d, want %d", tt.num, got, tt.want)
		}
	}
}

func TestIsPow2(t *testing.T) {
	for _, num := range []uint32{1, 2, 4, 1024, 1 << 31} {
		if !IsPow2(num) {
			t.Errorf("IsPow2(%d) = false, want true", num)
		}
	}
	for _, num := range []uint32{3, 5, 6, 7, 1022, (1 << 31) - 2} {
		if IsPow2(num) {
			t.Errorf("IsPow2(%d) = true, want false", num)
		}
	}
}
