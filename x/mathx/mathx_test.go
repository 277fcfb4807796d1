package mathx

import "testing"

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(7, 0, 10) != 7 {
		t.Fatal("clamp failed")
	}
	if Clamp(15, 10, 0) != 10 {
		t.Fatal("clamp with swapped bounds failed")
	}
}

func TestBetween(t *testing.T) {
	if !Between(uint32(5), 1, 9) || !Between(uint32(1), 1, 9) || !Between(uint32(9), 9, 1) {
		t.Fatal("expected inside")
	}
	if Between(uint32(10), 1, 9) || Between(uint32(0), 1, 9) {
		t.Fatal("expected outside")
	}
}

func TestMapRange(t *testing.T) {
	cases := []struct {
		x, inLo, inHi, outLo, outHi, want float64
	}{
		{0, 0, 10, 0, 100, 0},
		{10, 0, 10, 0, 100, 100},
		{5, 0, 10, 0, 100, 50},
		{15, 0, 10, 0, 100, 150},
		{-5, 0, 10, 0, 100, -50},
		{5, 0, 10, -1, 1, 0},
		{3, 3, 3, 7, 9, 7},
	}
	for _, c := range cases {
		if got := MapRange(c.x, c.inLo, c.inHi, c.outLo, c.outHi); got != c.want {
			t.Fatalf("MapRange(%v, %v, %v, %v, %v) = %v, want %v",
				c.x, c.inLo, c.inHi, c.outLo, c.outHi, got, c.want)
		}
	}
}
