package input

// ClickSlop is how far, in pixels, the pointer may travel between press and
// release for the pair to count as a click.
const ClickSlop = 5

// Pointer turns sampled button state into click events.
type Pointer struct {
	X, Y float32

	down              bool
	pressX, pressY    float32
	clicked           bool
	clickX, clickY    float32
	pressed, released bool
}

// Update records this frame's pointer position and left-button state.
func (p *Pointer) Update(x, y float32, down bool) {
	p.X, p.Y = x, y
	p.pressed = down && !p.down
	p.released = !down && p.down
	p.clicked = false

	if p.pressed {
		p.pressX, p.pressY = x, y
	}
	if p.released {
		dx, dy := x-p.pressX, y-p.pressY
		if dx*dx+dy*dy <= ClickSlop*ClickSlop {
			p.clicked = true
			p.clickX, p.clickY = x, y
		}
	}
	p.down = down
}

// Pressed reports a press edge this frame.
func (p *Pointer) Pressed() bool {
	return p.pressed
}

// Released reports a release edge this frame.
func (p *Pointer) Released() bool {
	return p.released
}

// Click returns the click position if one completed this frame.
func (p *Pointer) Click() (x, y float32, ok bool) {
	return p.clickX, p.clickY, p.clicked
}
