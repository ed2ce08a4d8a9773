// Package errs holds the error types shared by the fulfillment domain, its
// use cases and its adapters.
//
// Every type pairs a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...)
// with a struct carrying the offending parameter and an optional cause.
// Unwrap returns the sentinel, so callers branch with errors.Is and read the
// details with errors.As:
//
//	var notFound *errs.ObjectNotFoundError
//	if errors.As(err, &notFound) {
//	    // notFound.ParamName, notFound.ID
//	}
//
// VersionIsInvalidError is used for optimistic concurrency conflicts when an
// order is written against a stale version.
package errs
