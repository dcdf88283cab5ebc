package instruction

import "fmt"

// Tag is the one-byte variant discriminant. Values are pinned and must never
// be renumbered.
type Tag uint8

const (
	TagCreate   Tag = 0
	TagUpdate   Tag = 1
	TagTransfer Tag = 2
	TagDelete   Tag = 3
	TagRealloc  Tag = 4
)

var tagNames = map[Tag]string{
	TagCreate:   "create",
	TagUpdate:   "update",
	TagTransfer: "transfer",
	TagDelete:   "delete",
	TagRealloc:  "realloc",
}

// Valid reports whether t names a known variant.
func (t Tag) Valid() bool {
	_, ok := tagNames[t]
	return ok
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}
