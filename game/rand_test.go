package game

import "fmt"

// scriptedRand replays fixed draws in order and panics when a draw is out of
// range or the script runs dry, so a test fails on any unexpected draw.
type scriptedRand struct {
	draws []int
	next  int
}

func script(draws ...int) *scriptedRand {
	return &scriptedRand{draws: draws}
}

func (r *scriptedRand) Intn(n int) int {
	if r.next >= len(r.draws) {
		panic(fmt.Sprintf("unexpected draw %d from [0, %d)", r.next, n))
	}
	v := r.draws[r.next]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("draw %d = %d outside [0, %d)", r.next, v, n))
	}
	r.next++
	return v
}

func (r *scriptedRand) done() bool {
	return r.next == len(r.draws)
}
