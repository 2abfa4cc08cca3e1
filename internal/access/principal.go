package access

import "github.com/google/uuid"

// Principal is the authenticated actor performing a request, as yielded by
// the JWT middleware.
type Principal struct {
	Id          uuid.UUID
	Username    string
	Email       string
	PhoneNumber string
	IsSuperuser bool
}

// Action is what the principal is attempting against a resource.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

// ResourceKind tags the resource families the evaluator knows how to scope.
type ResourceKind int

const (
	KindNotebook ResourceKind = iota
	KindNote
	KindBookmark
	KindComment
)
