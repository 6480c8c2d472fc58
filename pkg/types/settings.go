package types

// CollisionPolicy decides what happens when a destination file already exists.
type CollisionPolicy string

const (
	CollisionOverwrite CollisionPolicy = "overwrite" // Replace the existing file
	CollisionSkip      CollisionPolicy = "skip"      // Leave both files where they are
	CollisionRename    CollisionPolicy = "rename"    // Append _(n) to the new name
)

// Valid reports whether p is a known policy.
func (p CollisionPolicy) Valid() bool {
	switch p {
	case CollisionOverwrite, CollisionSkip, CollisionRename:
		return true
	}
	return false
}
