// Package viz renders chain reports and excitation scans for the terminal.
//
//   - [RenderChain]: bordered lipgloss panel with one line per step
//   - [Summary]: colored valid/total count for a batch of chains
//   - [PlotScan]: asciigraph curve of a threshold scan
//
// Colors follow the verdict: green for allowed steps, red for steps that
// fail nuclide or threshold checks.
package viz
