// Package services provides domain services that span several aggregates of the
// campus delivery system.
//
// The package includes:
//   - AccessPolicy: the role rules that decide who may create, assign, advance
//     and view orders and who may manage robots and users
//
// Every use case asks the policy before mutating anything, so a denied request
// never leaves a partial change behind.
package services
