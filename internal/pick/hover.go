package pick

type HoverKind int

const (
	HoverNone HoverKind = iota
	HoverShow
	HoverHide
)

func (k HoverKind) String() string {
	switch k {
	case HoverShow:
		return "show"
	case HoverHide:
		return "hide"
	default:
		return "none"
	}
}

// HoverEvent tells a frontend what to do with its tooltip. X and Y are the
// pointer position that produced a Show.
type HoverEvent struct {
	Kind HoverKind
	Name string
	X, Y float64
}

// Hover tracks the body under the pointer across moves.
type Hover struct {
	current string
}

// Update reports Show when the hovered body changes, Hide once when the
// pointer leaves all bodies, and None otherwise.
func (h *Hover) Update(hit Hit, ok bool, px, py float64) HoverEvent {
	if ok {
		name := hit.ID()
		if name == h.current {
			return HoverEvent{Kind: HoverNone, Name: name}
		}
		h.current = name
		return HoverEvent{Kind: HoverShow, Name: name, X: px, Y: py}
	}
	if h.current == "" {
		return HoverEvent{Kind: HoverNone}
	}
	h.current = ""
	return HoverEvent{Kind: HoverHide}
}

// Current is the hovered body's name, or "" when none.
func (h *Hover) Current() string { return h.current }

func (h *Hover) Reset() { h.current = "" }
