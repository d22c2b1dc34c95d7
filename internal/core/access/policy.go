// Package access decides whether a requester may edit a post.
// The decision is tri-state so callers can distinguish "log in first"
// from "this is not your post".
package access

// Decision classifies an edit attempt by requester identity.
type Decision int

const (
	// Anonymous means no verified requester identity was supplied.
	// Callers should prompt for authentication.
	Anonymous Decision = iota

	// NonOwner means the requester is authenticated but is not the post's author.
	NonOwner

	// Owner means the requester is the post's author.
	Owner
)

func (d Decision) String() string {
	switch d {
	case Anonymous:
		return "anonymous"
	case NonOwner:
		return "non-owner"
	case Owner:
		return "owner"
	default:
		return "unknown"
	}
}

// Decide classifies an edit attempt. A requester ID of zero means anonymous.
func Decide(requesterID, authorID int64) Decision {
	if requesterID == 0 {
		return Anonymous
	}
	if requesterID != authorID {
		return NonOwner
	}
	return Owner
}

// CanEdit reports whether the requester may mutate the post.
// Only the post's author may edit.
func CanEdit(requesterID, authorID int64) bool {
	return Decide(requesterID, authorID) == Owner
}
