// Package transform builds the denormalized order fact table: a left
// outer join of cleaned orders to customers and payments, followed by
// a derive pass that adds the per-row business fields (order year,
// payment delay, fully-paid flag).
package transform
