// Package domain holds the shared record contracts that flow between
// pipeline stages: raw rows as produced by ingestion, cleaned records,
// the denormalized fact row, the aggregate tables, and the structured
// stage reports. These types are pure data; every stage consumes its
// input as an immutable snapshot and returns freshly built values.
//
// Optional values are modelled as pointers rather than sentinel
// floats, so a missing amount can never leak into arithmetic
// unnoticed.
package domain
