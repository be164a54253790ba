// Package dataset is the ingestion boundary between raw CSV/Excel uploads
// and the typed rows the analytics engine consumes. It owns the loose-row
// representation with best-effort numeric coercion (missing or malformed
// cells become zero values, never errors), header-driven column mapping for
// the three dataset kinds, and the Store holding the current snapshot with
// replacement-on-upload semantics.
package dataset
