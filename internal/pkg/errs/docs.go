// Package errs holds the typed errors shared by the domain, the use cases and
// the adapters.
//
// Each type unwraps to a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired), so callers match with errors.Is
// and read details such as ObjectNotFoundError.ParamName ("order", "robot",
// "user") with errors.As. Values are printed on a single line.
package errs
