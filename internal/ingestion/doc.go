// Package ingestion reads the three raw sources into typed raw rows:
// customers from CSV, orders from JSON, payments from an Excel
// workbook. The readers are thin adapters; no cleaning happens here.
//
// A missing or unreadable source degrades to an empty table with a
// warning. The one fatal condition is structural: a non-empty source
// whose required key column is entirely absent fails the run, because
// joining without keys would be silently wrong.
package ingestion
