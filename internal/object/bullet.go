package object

import (
	"github.com/tomz197/invaders/internal/physics"
)

// Bullet is a shot travelling up the board.
type Bullet struct {
	X, Y          float64
	Width, Height float64
	Used          bool // Hit an alien; evicted on the next sweep
}

// Bounds returns the collision rectangle.
func (b *Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// Expired reports whether the bullet can be evicted: it hit something or its
// top edge left the board.
func (b *Bullet) Expired() bool {
	return b.Used || b.Y < 0
}

// Draw renders the bullet as a solid bar.
func (b *Bullet) Draw(ctx DrawContext) {
	ctx.Canvas.FillRect(b.X, b.Y, b.Width, b.Height)
}

// BulletQueue is a FIFO ring buffer of bullets ordered by creation time.
// Removal only happens at the front, so eviction is O(1) per bullet.
type BulletQueue struct {
	buf  []Bullet
	head int
	size int
}

// Len returns the number of queued bullets.
func (q *BulletQueue) Len() int {
	return q.size
}

// Push appends a bullet at the back, growing the ring if full.
func (q *BulletQueue) Push(b Bullet) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = b
	q.size++
}

// At returns a pointer to the i-th bullet from the front. The pointer is
// valid until the next Push or Clear.
func (q *BulletQueue) At(i int) *Bullet {
	if i < 0 || i >= q.size {
		panic("object: bullet index out of range")
	}
	return &q.buf[(q.head+i)%len(q.buf)]
}

// Front returns the oldest bullet, or nil when empty.
func (q *BulletQueue) Front() *Bullet {
	if q.size == 0 {
		return nil
	}
	return &q.buf[q.head]
}

// PopFront removes the oldest bullet.
func (q *BulletQueue) PopFront() {
	if q.size == 0 {
		return
	}
	q.buf[q.head] = Bullet{}
	q.head = (q.head + 1) % len(q.buf)
	q.size--
}

// EvictExpired pops from the front while the front bullet is expired and
// returns how many were removed. It stops at the first live bullet even if
// expired bullets sit behind it.
func (q *BulletQueue) EvictExpired() int {
	n := 0
	for q.size > 0 && q.Front().Expired() {
		q.PopFront()
		n++
	}
	return n
}

// Clear removes every bullet, keeping the allocated ring.
func (q *BulletQueue) Clear() {
	clear(q.buf)
	q.head = 0
	q.size = 0
}

func (q *BulletQueue) grow() {
	capacity := len(q.buf) * 2
	if capacity == 0 {
		capacity = 16
	}
	buf := make([]Bullet, capacity)
	for i := 0; i < q.size; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}
