// File: core/observable/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package observable implements the subscription contract.
//
// Create turns a subscribe function into an api.Observable. Every subscription
// wraps the consumer in a safety wrapper that drops notifications after the first
// terminal one and releases the subscription handle once that terminal
// notification has been delivered.
//
// Errors returned by the subscribe function are construction failures: they are
// returned from Subscribe and never delivered through OnError. Panics raised by
// the subscribe function are not recovered.
//
// Notification calls are not locked here. Producers must serialize the calls they
// make on one subscription.
package observable
