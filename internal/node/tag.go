package node

import "strings"

// Tag is the color category a user may assign to a node in the editor.
type Tag int

const (
	TagWhite Tag = iota
	TagRed
	TagGreen
	TagBlue
	TagYellow
	TagAqua
	TagPurple
)

var tagNames = [...]string{"white", "red", "green", "blue", "yellow", "aqua", "purple"}

var tagColors = [...]uint32{0xffffffff, 0xffffaaaa, 0xffaaffaa, 0xffaaaaff, 0xffffffaa, 0xffaaffff, 0xffffaaff}

// ParseTag resolves a serialized tag name. Unknown names fall back to white.
func ParseTag(name string) Tag {
	for i, n := range tagNames {
		if n == strings.ToLower(name) {
			return Tag(i)
		}
	}
	return TagWhite
}

// Tags lists every tag in declaration order.
func Tags() []Tag {
	return []Tag{TagWhite, TagRed, TagGreen, TagBlue, TagYellow, TagAqua, TagPurple}
}

// Color returns the ARGB color of the tag.
func (t Tag) Color() uint32 {
	if t < 0 || int(t) >= len(tagColors) {
		return tagColors[TagWhite]
	}
	return tagColors[t]
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return tagNames[TagWhite]
	}
	return tagNames[t]
}
