// Package http exposes the latest pipeline run to the reporting
// collaborator as a read-only JSON API: the cleaned tables, the fact
// table and the four aggregates. The surface defines no protocol
// beyond "a cleaned table"; it never mutates pipeline state.
package http
