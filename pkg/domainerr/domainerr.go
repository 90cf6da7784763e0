// Package domainerr defines the contract every domain error variant satisfies.
//
// A variant declares its kind by embedding exactly one marker (NotFound,
// RelatedNotFound, AlreadyExists, InvariantViolation, Unknown). Transport layers
// turn variants into responses through a Classifier, whose method set is the
// set of kinds: adding a kind breaks every classifier at compile time, and a
// variant without a marker does not satisfy Error.
package domainerr

import "github.com/google/uuid"

// Kind names the class of a domain error.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindRelatedNotFound    Kind = "related_not_found"
	KindAlreadyExists      Kind = "already_exists"
	KindInvariantViolation Kind = "invariant_violation"
	KindUnknown            Kind = "unknown"
)

// Error is implemented by every variant of every entity family.
type Error interface {
	error
	// Subject is the identifier the error is about. It is uuid.Nil when the
	// entity did not exist yet.
	Subject() uuid.UUID
	accept(v kindVisitor)
}

type kindVisitor interface {
	notFound()
	relatedNotFound()
	alreadyExists()
	invariantViolation()
	unknown()
}

// NotFound marks a variant reporting a missing primary subject.
type NotFound struct{}

func (NotFound) accept(v kindVisitor) { v.notFound() }

// RelatedNotFound marks a variant reporting a missing foreign-keyed dependency.
type RelatedNotFound struct{}

func (RelatedNotFound) accept(v kindVisitor) { v.relatedNotFound() }

// AlreadyExists marks a uniqueness violation.
type AlreadyExists struct{}

func (AlreadyExists) accept(v kindVisitor) { v.alreadyExists() }

// InvariantViolation marks a broken domain rule (ordering, overlap).
type InvariantViolation struct{}

func (InvariantViolation) accept(v kindVisitor) { v.invariantViolation() }

// Unknown marks an unexpected persistence or runtime failure. Variants
// embedding it also carry the original cause.
type Unknown struct{}

func (Unknown) accept(v kindVisitor) { v.unknown() }

// Classifier maps each kind of domain error to an R.
type Classifier[R any] interface {
	NotFound(err Error) R
	RelatedNotFound(err Error) R
	AlreadyExists(err Error) R
	InvariantViolation(err Error) R
	Unknown(err Error) R
}

// Classify dispatches err to the classifier method for its kind.
func Classify[R any](err Error, c Classifier[R]) R {
	v := &classifyVisitor[R]{c: c, err: err}
	err.accept(v)
	return v.out
}

type classifyVisitor[R any] struct {
	c   Classifier[R]
	err Error
	out R
}

func (v *classifyVisitor[R]) notFound()           { v.out = v.c.NotFound(v.err) }
func (v *classifyVisitor[R]) relatedNotFound()    { v.out = v.c.RelatedNotFound(v.err) }
func (v *classifyVisitor[R]) alreadyExists()      { v.out = v.c.AlreadyExists(v.err) }
func (v *classifyVisitor[R]) invariantViolation() { v.out = v.c.InvariantViolation(v.err) }
func (v *classifyVisitor[R]) unknown()            { v.out = v.c.Unknown(v.err) }

// KindOf reports the kind of err. Used for logs and metrics labels.
func KindOf(err Error) Kind {
	return Classify[Kind](err, kindClassifier{})
}

type kindClassifier struct{}

func (kindClassifier) NotFound(Error) Kind           { return KindNotFound }
func (kindClassifier) RelatedNotFound(Error) Kind    { return KindRelatedNotFound }
func (kindClassifier) AlreadyExists(Error) Kind      { return KindAlreadyExists }
func (kindClassifier) InvariantViolation(Error) Kind { return KindInvariantViolation }
func (kindClassifier) Unknown(Error) Kind            { return KindUnknown }
