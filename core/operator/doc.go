// File: core/operator/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package operator builds new observables by wrapping observers.
//
// An operator is a function from a downstream observer to the upstream observer
// that feeds it (see Operator and Lift). Each operator is a small struct holding
// only its transformation state; cancellation stays with the subscription glue in
// package observable.
//
// Observer-level constructors are named New<Operator> (NewWhere,
// NewSingleOrDefault, ...). Observable-level forms carry the plain operator name
// (Filter, SingleOrDefault, ...).
//
// Panics raised by user transformation logic (predicates, selectors) are
// recovered at the operator boundary and delivered downstream as an OnError
// carrying an api.Error with code api.ErrCodeOperatorFault. Upstream errors pass
// through unchanged.
package operator
