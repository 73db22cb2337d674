package graphics

// Target is everything the graphics state sends to a backend.
type Target interface {
	FillTarget
	StrokeTarget
}

type snapshot struct {
	stroke Stroke
	fill   Fill
	font   Font
}

// State 当前的描边、填充与字体，以及此前入栈的快照。
// 三者均为值类型，入栈即结构复制，之后修改当前状态不会影响栈中快照。
type State struct {
	target Target
	stroke Stroke
	fill   Fill
	font   Font
	stack  []snapshot
}

// NewState creates the default state and applies stroke and fill to target.
func NewState(target Target) *State {
	s := &State{target: target}
	s.install()
	return s
}

func (s *State) install() {
	s.stroke = NewStroke(s.target)
	s.fill = NewFill(s.target)
	s.font = NewFont()
}

// Stroke, Fill and Font return the current values for in-place modification.
func (s *State) Stroke() *Stroke { return &s.stroke }
func (s *State) Fill() *Fill     { return &s.fill }
func (s *State) Font() *Font     { return &s.font }

// Depth returns the number of saved snapshots.
func (s *State) Depth() int { return len(s.stack) }

// Push saves a copy of the current triple. The current stroke and fill are
// re-applied, so the backend always reflects the working copy.
func (s *State) Push() {
	s.stack = append(s.stack, snapshot{stroke: s.stroke, fill: s.fill, font: s.font})
	s.stroke.Apply()
	s.fill.Apply()
}

// Pop restores the most recent snapshot and applies its stroke and fill.
// Popping an empty stack does nothing.
func (s *State) Pop() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	top := s.stack[n-1]
	s.stack = s.stack[:n-1]
	s.stroke, s.fill, s.font = top.stroke, top.fill, top.font
	s.stroke.Apply()
	s.fill.Apply()
}

// SetDefault replaces the current triple with defaults and applies them.
// Saved snapshots are kept.
func (s *State) SetDefault() { s.install() }
