package timex

import (
	"testing"
	"time"
)

func TestMs(t *testing.T) {
	if got := Ms(0, time.Second); got != time.Second {
		t.Fatalf("zero: got %v", got)
	}
	if got := Ms(-3, time.Second); got != time.Second {
		t.Fatalf("negative: got %v", got)
	}
	if got := Ms(250, time.Second); got != 250*time.Millisecond {
		t.Fatalf("250: got %v", got)
	}
}

func TestNowMsMonotonicEnough(t *testing.T) {
	a := NowMs()
	b := NowMs()
	if b < a {
		t.Fatalf("NowMs went backwards: %d then %d", a, b)
	}
}
