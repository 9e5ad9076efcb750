// Package api
// Author: momentics <momentics@gmail.com>
//
// Subscription contract between a value producer and a consumer.

package api

// Observer receives the notifications of one subscription.
//
// Calls are serialized per subscription: an Observer never sees overlapping calls
// for the same subscription. At most one of OnError and OnCompleted is delivered,
// and nothing follows it.
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnCompleted()
}

// Observable is a push source. Subscribe begins delivering notifications to the
// observer and returns the handle that cancels the subscription.
//
// A non-nil error means the subscription never started; it is reported to the
// caller and never through OnError.
type Observable[T any] interface {
	Subscribe(observer Observer[T]) (Disposable, error)
}
