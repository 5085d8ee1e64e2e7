// Package cleaning implements the three independent record cleaners:
// customers (dedup, country standardization, email flagging), orders
// (status normalization, amount coercion, IQR outlier fencing) and
// payments (full-row dedup, date and amount coercion).
//
// Each cleaner is a pure batch transform: rows in, fresh rows out,
// plus a StageReport carrying counts and warnings. No failure inside
// a cleaner aborts the pipeline; bad values degrade to nil and are
// counted. The cleaners share no state and may run concurrently.
package cleaning
