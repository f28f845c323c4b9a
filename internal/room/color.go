package room

import "github.com/andrewq/collabcode/internal/protocol"

// colorAssigner hands out colors from protocol.Palette in rotation, one
// per room (original_source/editor.py get_next_color). No cross-room
// coordination is needed (§9).
type colorAssigner struct {
	index int
}

func (c *colorAssigner) next() string {
	color := protocol.Palette[c.index]
	c.index = (c.index + 1) % len(protocol.Palette)
	return color
}
