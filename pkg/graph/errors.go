package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrVertexNotFound       = errors.New("vertex not found")
	ErrInexistentEdge       = errors.New("edge does not exist")
	ErrUnsupportedOperation = errors.New("operation not supported by this graph variant")
	ErrNotMultigraph        = errors.New("graph is not a multigraph")
	ErrSelfLoop             = errors.New("self-loops are not allowed in this graph")
	ErrInvalidOrientation   = errors.New("invalid edge orientation")
)

// Error provides structured error information for graph operations.
type Error struct {
	Op      string // Operation that failed (e.g., "EdgeWeight", "Embeddedness")
	Entity  string // Entity type (e.g., "vertex", "edge")
	Key     string // Identifier of the entity, formatted for display
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Key != "" && e.Context != "":
		return fmt.Sprintf("%s %s %s (%s): %v", e.Op, e.Entity, e.Key, e.Context, e.Cause)
	case e.Key != "":
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.Key, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building graph errors.
type ErrorBuilder struct {
	err Error
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: Error{Op: op}}
}

// Vertex sets the entity to "vertex" with the given identifier.
func (b *ErrorBuilder) Vertex(v any) *ErrorBuilder {
	b.err.Entity = "vertex"
	b.err.Key = fmt.Sprint(v)
	return b
}

// Edge sets the entity to "edge" between orig and dest.
func (b *ErrorBuilder) Edge(orig, dest any) *ErrorBuilder {
	b.err.Entity = "edge"
	b.err.Key = fmt.Sprintf("(%v,%v)", orig, dest)
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed Error.
func (b *ErrorBuilder) Build() *Error {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// InexistentEdgeError reports that op was asked about a missing edge.
func InexistentEdgeError(op string, orig, dest any) error {
	return NewError(op).Edge(orig, dest).Cause(ErrInexistentEdge).Err()
}

// VertexNotFoundError reports that op was asked about a missing vertex.
func VertexNotFoundError(op string, v any) error {
	return NewError(op).Vertex(v).Cause(ErrVertexNotFound).Err()
}

// IsNotFound returns true if the error is a missing vertex or edge error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrVertexNotFound) || errors.Is(err, ErrInexistentEdge)
}

// IsUnsupported returns true if the operation is meaningless for the graph
// variant it was invoked on.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation) || errors.Is(err, ErrNotMultigraph)
}
