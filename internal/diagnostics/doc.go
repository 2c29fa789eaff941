// Package diagnostics reads host-wide health for reports.
//
// HostCollector samples system RAM, root disk usage and load average on
// every call. CPU counts and the GPU inventory do not change while the agent
// runs, so they are read once and cached. Every reader is best-effort: a
// failure marks that group invalid and the report renders it as unavailable.
package diagnostics
