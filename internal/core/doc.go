// Package core provides the business logic layer for azpanel.
//
// This package contains all panel functionality separated from UI concerns:
// the connect/disconnect lifecycle, the two-level hierarchy fetch, the
// hierarchy-aware search filter, and the copy feedback slot.
//
// # Design Principles
//
//   - Functions return errors instead of printing to stdout/stderr
//   - All mutable state lives on a [Panel] instance, never at package level
//   - UI-specific logic belongs in the cli package, not here
//
// # Fetch Orchestration
//
// The hierarchy fetch is split into two phases:
//
//  1. [Lister.ListProjects] - one call for the organization's project list
//  2. [Lister.ListRepositories] - one call per project, strictly in order
//
// A failed repository listing is isolated to its project; the rest of the
// hierarchy is unaffected. [Panel.Refresh] guards the final write with a
// generation counter so a disconnect racing an in-flight fetch never
// resurrects stale data.
package core
