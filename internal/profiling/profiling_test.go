package profiling

import (
	"testing"
	"time"
)

func TestFormatMs(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "0ms",
		4 * time.Millisecond:    "4ms",
		4200 * time.Microsecond: "4.2ms",
		1240 * time.Microsecond: "1.2ms",
	}
	for d, want := range cases {
		if got := FormatMs(d); got != want {
			t.Fatalf("FormatMs(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestTrackAndTopN(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["slow"] = 5 * time.Millisecond
	frameTotals["fast"] = 1 * time.Millisecond
	frameTotals["mid"] = 3 * time.Millisecond
	mu.Unlock()

	if got, want := TopN(2), "slow:5ms, mid:3ms"; got != want {
		t.Fatalf("TopN(2) = %q, want %q", got, want)
	}
	if got := TopN(10); got != "slow:5ms, mid:3ms, fast:1ms" {
		t.Fatalf("TopN(10) = %q", got)
	}

	Track("slow")()
	if Snapshot()["slow"] < 5*time.Millisecond {
		t.Fatal("Track should accumulate onto existing total")
	}

	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Fatal("ResetFrame should clear totals")
	}
}
