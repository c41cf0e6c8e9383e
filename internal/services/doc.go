// Package services contains the application services behind the HTTP
// handlers: the memoized dashboard data service and the health service.
//
// The dashboard service owns the only process-wide cache of the prepared
// dataset. The cache is keyed on a fingerprint of the two input files, so a
// load is recomputed exactly when the inputs change or after an explicit
// invalidation; the pipeline itself stays synchronous and stateless.
package services
