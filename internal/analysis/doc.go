// Package analysis derives numbers from verified or candidate chains.
//
//   - [Report]: Q-value, threshold and verdict for every step of a chain
//   - [ThresholdScan]: sweep of residual excitation for a single step
//   - [VerifyAll]: concurrent verification of many independent chains
//
// # Example
//
//	rep := analysis.Report(tbl, chain)
//	for _, s := range rep.Steps {
//	    fmt.Println(s.Equation, s.QValue, s.Allowed)
//	}
package analysis
