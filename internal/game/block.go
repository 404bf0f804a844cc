package game

import (
	"time"

	"github.com/jvesely/arcade/internal/physics"
)

// BlockID is a stable handle into the arena. IDs are never reused within a
// session, so a stale ID after destruction simply resolves to nothing.
type BlockID int

// Block is a falling rectangle the player can stand on, punch from below, or
// be crushed by. Once landed it is immovable until its support is destroyed.
type Block struct {
	ID     BlockID
	X, Y   float64 // Center position
	W, H   float64
	VY     float64 // Fall velocity; zero once landed
	Hits   int     // Hit-from-below counter
	Limit  int     // Destruction threshold (3 burden, 5 virtue)
	Label  string  // Display label, recorded as the killer on a crush
	Virtue bool    // Post-goal pool variant
	Landed bool    // Immovable: resting on the floor or another block

	lastHit time.Duration // Game-clock instant of the last registered hit
	restsOn BlockID       // Block this one rests on; 0 = floor or airborne
}

// Rect returns the block's bounding rectangle.
func (b *Block) Rect() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Falling reports whether the block is still descending.
func (b *Block) Falling() bool { return !b.Landed }

// Arena owns all live blocks and the support relation between them. The
// relation maps a block to the set of blocks resting directly on it; the sets
// form a forest rooted at floor-landed blocks. The collision resolver is the
// sole writer, and a block is only ever attached below another at the moment
// they first touch, so the relation is acyclic by construction.
type Arena struct {
	blocks   map[BlockID]*Block
	supports map[BlockID]map[BlockID]struct{}
	order    []BlockID // Insertion order for deterministic iteration
	nextID   BlockID
}

// NewArena creates an empty block arena.
func NewArena() *Arena {
	return &Arena{
		blocks:   make(map[BlockID]*Block),
		supports: make(map[BlockID]map[BlockID]struct{}),
	}
}

// Add registers a block and assigns its ID.
func (a *Arena) Add(b *Block) BlockID {
	a.nextID++
	b.ID = a.nextID
	a.blocks[b.ID] = b
	a.order = append(a.order, b.ID)
	return b.ID
}

// Get returns the block for id, or nil if it no longer exists.
func (a *Arena) Get(id BlockID) *Block {
	return a.blocks[id]
}

// Len returns the number of live blocks.
func (a *Arena) Len() int { return len(a.blocks) }

// Each calls fn for every live block in insertion order.
func (a *Arena) Each(fn func(*Block)) {
	for _, id := range a.order {
		if b, ok := a.blocks[id]; ok {
			fn(b)
		}
	}
}

// Supported returns the IDs of blocks resting directly on id.
func (a *Arena) Supported(id BlockID) []BlockID {
	set := a.supports[id]
	if len(set) == 0 {
		return nil
	}
	out := make([]BlockID, 0, len(set))
	for _, oid := range a.order {
		if _, ok := set[oid]; ok {
			out = append(out, oid)
		}
	}
	return out
}

// SetSupport records that top now rests on bottom. Any prior support relation
// for top is cleared first: a block rests on at most one support.
func (a *Arena) SetSupport(top, bottom BlockID) {
	t := a.blocks[top]
	if t == nil || a.blocks[bottom] == nil || top == bottom {
		return
	}
	a.ClearSupport(top)
	set := a.supports[bottom]
	if set == nil {
		set = make(map[BlockID]struct{})
		a.supports[bottom] = set
	}
	set[top] = struct{}{}
	t.restsOn = bottom
}

// ClearSupport detaches id from whatever it was resting on.
func (a *Arena) ClearSupport(id BlockID) {
	b := a.blocks[id]
	if b == nil || b.restsOn == 0 {
		return
	}
	if set := a.supports[b.restsOn]; set != nil {
		delete(set, id)
		if len(set) == 0 {
			delete(a.supports, b.restsOn)
		}
	}
	b.restsOn = 0
}

// Remove deletes a block and strips it from the relation entirely. Blocks that
// rested on it are left detached (callers release them first when cascading).
func (a *Arena) Remove(id BlockID) {
	b := a.blocks[id]
	if b == nil {
		return
	}
	a.ClearSupport(id)
	for top := range a.supports[id] {
		if t := a.blocks[top]; t != nil && t.restsOn == id {
			t.restsOn = 0
		}
	}
	delete(a.supports, id)
	delete(a.blocks, id)
	for i, oid := range a.order {
		if oid == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// ReleaseCascade restores every block (transitively) resting on id to a
// falling state with the standard fall speed. The released blocks themselves
// are not destroyed; they just resume falling.
func (a *Arena) ReleaseCascade(id BlockID, fallSpeed float64) {
	for _, topID := range a.Supported(id) {
		top := a.blocks[topID]
		if top == nil {
			continue
		}
		a.ClearSupport(topID)
		top.Landed = false
		top.VY = fallSpeed
		a.ReleaseCascade(topID, fallSpeed)
	}
}

// RestsOnTransitively reports whether block a sits (directly or through other
// blocks) on top of target. Used by tests to verify acyclicity.
func (ar *Arena) RestsOnTransitively(id, target BlockID) bool {
	seen := make(map[BlockID]bool)
	cur := id
	for cur != 0 && !seen[cur] {
		seen[cur] = true
		b := ar.blocks[cur]
		if b == nil {
			return false
		}
		if b.restsOn == target {
			return true
		}
		cur = b.restsOn
	}
	return false
}
