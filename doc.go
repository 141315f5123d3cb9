// Package pefolio consolidates a private-equity portfolio workbook into two
// canonical, USD-normalized tables and audits the reported commitments
// against the ones computed from the transaction events.
//
// The workbook carries three sheets:
//   - Assets Data: one or more rows per deal (deal metadata and the reported
//     commitment). Merged cells leave the deal name empty on continuation rows.
//   - Files Data: capital calls, commitments and other events per investor.
//   - NAV Data: valuations, usually at fund level.
//
// Every step of the consolidation is a pure function from one table shape to
// another, chained by Run:
//
//	LoadSheets -> NormalizeDeals, NormalizeEvents -> Unify -> Rates.Convert*
//	  -> AggregateEvents -> Reconcile -> MetadataTable, MeasuresTable
//
// Cleaning never fails: unreadable amounts become zero, undated events are
// dropped, unknown currencies convert at a rate of one and unknown measure
// labels pass through. The counts of such substitutions are reported in
// Diagnostics so that a run stays auditable.
package pefolio
