// Package httpapi holds the pieces shared by the HTTP components: status
// carrying errors, JSON request/response helpers, guards and mount paths.
package httpapi
