// Package purchase exposes the license purchase flow: one route creates a
// payment and returns its checkout URL, the other receives the payment
// provider's status callback.
package purchase
