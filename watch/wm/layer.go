package wm

// Layer is a node in a window's drawing tree.
//
// Frames are relative to the parent. Children draw after their parent, in
// the order they were added.
type Layer struct {
	ui       *UI
	frame    Rect
	hidden   bool
	parent   *Layer
	children []*Layer

	drawFn func(c *canvas)
}

func newLayer(ui *UI, frame Rect) *Layer {
	return &Layer{ui: ui, frame: frame}
}

func (l *Layer) Frame() Rect { return l.frame }

func (l *Layer) SetFrame(r Rect) {
	if l.frame == r {
		return
	}
	l.frame = r
	l.markDirty()
}

// Bounds is the frame at the layer's own origin.
func (l *Layer) Bounds() Rect { return Rect{Size: l.frame.Size} }

func (l *Layer) SetHidden(hidden bool) {
	if l.hidden == hidden {
		return
	}
	l.hidden = hidden
	l.markDirty()
}

// AddChild appends child, detaching it from any previous parent.
func (l *Layer) AddChild(child *Layer) {
	if child == nil || child == l {
		return
	}
	child.RemoveFromParent()
	child.parent = l
	l.children = append(l.children, child)
	l.markDirty()
}

func (l *Layer) RemoveFromParent() {
	p := l.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == l {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	l.parent = nil
	p.markDirty()
}

// Children returns the child layers in drawing order.
func (l *Layer) Children() []*Layer { return l.children }

func (l *Layer) markDirty() {
	if l.ui != nil {
		l.ui.markDirty()
	}
}

func (l *Layer) draw(parent *canvas) {
	if l.hidden {
		return
	}
	c := parent.within(l.frame)
	if c.clip.Empty() {
		return
	}
	if l.drawFn != nil {
		l.drawFn(c)
	}
	for _, child := range l.children {
		child.draw(c)
	}
}
