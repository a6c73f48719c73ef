package engine

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle shrunk
// by margin on every side.
func (r Rect) Contains(x, y, margin float64) bool {
	return x >= r.X+margin && x <= r.MaxX()-margin &&
		y >= r.Y+margin && y <= r.MaxY()-margin
}

// Sprite is a movable, drawable entity with a circular collider. Image is an
// opaque asset reference resolved by whatever front end draws the sprite.
type Sprite struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Depth  int
	Image  string
}

// Move advances the sprite by its velocity. Called once per frame.
func (s *Sprite) Move() {
	s.X += s.VX
	s.Y += s.VY
}

// Overlaps reports whether the circular colliders of a and b intersect.
func Overlaps(a, b *Sprite) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	r := a.Radius + b.Radius
	return dx*dx+dy*dy <= r*r
}

// EachOverlap invokes fn for every sprite in group whose collider intersects
// s, skipping s itself.
func EachOverlap(s *Sprite, group []*Sprite, fn func(*Sprite)) {
	for _, other := range group {
		if other == s {
			continue
		}
		if Overlaps(s, other) {
			fn(other)
		}
	}
}
