package stego

import "testing"

func TestComplexityScore(t *testing.T) {
	// 3x3 single-channel grid with a known cross around the center.
	g := NewPixelGrid(3, 3, 1)
	g.Set(1, 1, 0, 100)
	g.Set(0, 1, 0, 90)  // |90-100|  = 10
	g.Set(2, 1, 0, 120) // |120-100| = 20
	g.Set(1, 0, 0, 100) // 0
	g.Set(1, 2, 0, 95)  // 5

	score, ok := complexityScore(g, Position{X: 1, Y: 1}, 3)
	if !ok {
		t.Fatal("interior slot reported as border")
	}
	if score != 35 {
		t.Errorf("score = %d, want 35", score)
	}
}

func TestComplexityScoreBorder(t *testing.T) {
	g := NewPixelGrid(5, 5, 3)
	borders := []Position{
		{X: 0, Y: 2}, {X: 4, Y: 2}, {X: 2, Y: 0}, {X: 2, Y: 4}, {X: 0, Y: 0},
	}
	for _, p := range borders {
		if _, ok := complexityScore(g, p, 3); ok {
			t.Errorf("border slot %v not rejected", p)
		}
	}

	// A wider window pushes the border inward.
	if _, ok := complexityScore(g, Position{X: 1, Y: 1}, 5); ok {
		t.Error("window 5 accepted a slot one pixel from the edge")
	}
	if _, ok := complexityScore(g, Position{X: 2, Y: 2}, 5); !ok {
		t.Error("window 5 rejected the true center")
	}
}

func TestAcceptsThreshold(t *testing.T) {
	g := flat(5, 5, 1, 128) // every interior score is 0

	e, err := New(Options{
		Multiplier: DefaultMultiplier,
		Increment:  DefaultIncrement,
		Window:     3,
		Threshold:  0, // exclusive: score must exceed it
		HeaderBits: 32,
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.accepts(g, Position{X: 2, Y: 2}) {
		t.Error("score 0 accepted with threshold 0")
	}

	if !acceptAll().accepts(g, Position{X: 2, Y: 2}) {
		t.Error("score 0 rejected with threshold -1")
	}
}

func TestSurvey(t *testing.T) {
	opts := DefaultOptions()
	opts.Threshold = -1
	opts.HeaderBits = 8
	e, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}

	g := flat(6, 6, 1, 128)
	rep, err := e.Survey(g, "k")
	if err != nil {
		t.Fatal(err)
	}
	if rep.TotalSlots != 36 {
		t.Errorf("TotalSlots = %d, want 36", rep.TotalSlots)
	}
	if rep.AcceptedSlots != 16 {
		t.Errorf("AcceptedSlots = %d, want 16 interior slots", rep.AcceptedSlots)
	}
	if rep.CapacityBytes != 1 {
		t.Errorf("CapacityBytes = %d, want 1 (16 bits net of 8-bit header)", rep.CapacityBytes)
	}
	if got := rep.Scores[0]; got != -1 {
		t.Errorf("border score = %d, want -1", got)
	}
	if got := rep.Scores[1*6+1]; got != 0 {
		t.Errorf("interior score = %d, want 0", got)
	}

	if _, err := e.Survey(g, ""); err != ErrInvalidKey {
		t.Errorf("empty passphrase: err = %v, want ErrInvalidKey", err)
	}
}

func TestGridBasics(t *testing.T) {
	g := NewPixelGrid(4, 3, 3)
	g.Set(2, 1, 1, 200)
	if got := g.At(2, 1, 1); got != 200 {
		t.Errorf("At = %d, want 200", got)
	}

	c := g.Clone()
	if !g.Equal(c) {
		t.Error("clone not equal to source")
	}
	c.Set(0, 0, 0, 1)
	if g.Equal(c) {
		t.Error("mutated clone still equal to source")
	}
	if g.At(0, 0, 0) != 0 {
		t.Error("clone shares storage with source")
	}

	if g.Equal(NewPixelGrid(4, 3, 4)) {
		t.Error("grids with different channel counts reported equal")
	}
}
