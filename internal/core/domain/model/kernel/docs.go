// Package kernel provides the shared value objects of the campus delivery domain.
//
// UUID wraps github.com/google/uuid and is the identifier type of orders, robots and
// users. Its zero value is invalid, so an identifier that was never assigned is caught
// by Validate instead of being persisted as the nil UUID.
package kernel
