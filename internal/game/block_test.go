package game

import "testing"

func addTestBlock(a *Arena, x, y float64) *Block {
	b := &Block{X: x, Y: y, W: 34, H: 18, Landed: true}
	a.Add(b)
	return b
}

func TestArenaSupportIsSingle(t *testing.T) {
	a := NewArena()
	base1 := addTestBlock(a, 50, 0)
	base2 := addTestBlock(a, 90, 0)
	top := addTestBlock(a, 50, -18)

	a.SetSupport(top.ID, base1.ID)
	a.SetSupport(top.ID, base2.ID)

	if got := a.Supported(base1.ID); len(got) != 0 {
		t.Fatalf("block still listed on old support: %v", got)
	}
	got := a.Supported(base2.ID)
	if len(got) != 1 || got[0] != top.ID {
		t.Fatalf("Supported(base2) = %v, want [%d]", got, top.ID)
	}
}

func TestArenaSelfSupportIgnored(t *testing.T) {
	a := NewArena()
	b := addTestBlock(a, 50, 0)
	a.SetSupport(b.ID, b.ID)
	if got := a.Supported(b.ID); len(got) != 0 {
		t.Fatalf("block supports itself: %v", got)
	}
}

func TestArenaReleaseCascade(t *testing.T) {
	a := NewArena()
	base := addTestBlock(a, 50, 0)
	mid := addTestBlock(a, 50, -18)
	high := addTestBlock(a, 50, -36)
	side := addTestBlock(a, 120, 0)

	a.SetSupport(mid.ID, base.ID)
	a.SetSupport(high.ID, mid.ID)

	if !a.RestsOnTransitively(high.ID, base.ID) {
		t.Fatal("high should rest transitively on base")
	}

	a.ReleaseCascade(base.ID, 120)

	for _, b := range []*Block{mid, high} {
		if b.Landed {
			t.Fatalf("block %q still landed after cascade", b.Label)
		}
		if b.VY != 120 {
			t.Fatalf("released block VY = %v, want 120", b.VY)
		}
	}
	if !base.Landed {
		t.Fatal("cascade released the base itself")
	}
	if !side.Landed {
		t.Fatal("cascade released an unrelated block")
	}
}

func TestArenaRemoveDetachesRelation(t *testing.T) {
	a := NewArena()
	base := addTestBlock(a, 50, 0)
	top := addTestBlock(a, 50, -18)
	a.SetSupport(top.ID, base.ID)

	a.Remove(base.ID)

	if a.Get(base.ID) != nil {
		t.Fatal("removed block still retrievable")
	}
	if a.Len() != 1 {
		t.Fatalf("Len = %d, want 1", a.Len())
	}
	if a.RestsOnTransitively(top.ID, base.ID) {
		t.Fatal("top still rests on a removed block")
	}
}

func TestArenaIDsNotReused(t *testing.T) {
	a := NewArena()
	first := addTestBlock(a, 50, 0)
	a.Remove(first.ID)
	second := addTestBlock(a, 50, 0)
	if second.ID == first.ID {
		t.Fatalf("block ID %d reused after removal", first.ID)
	}
	if a.Get(first.ID) != nil {
		t.Fatal("stale ID resolves to a live block")
	}
}
