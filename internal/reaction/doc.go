// Package reaction evaluates single reaction/decay steps and chains of them.
//
//   - [Step]: a reaction T(p,e)R or a decay P->D+E with its residual derived
//     from conservation of Z and A
//   - [Chain]: ordered steps where each residual feeds the next step's target
//   - [Target]: stopping-material composition, descriptive only
//
// # Kinematics
//
// Masses are nuclear mass-energies in MeV. A reaction is allowed when the
// mean beam energy reaches the non-relativistic two-body threshold
//
//	Q       = Ex_in + m0 + m1 - m2 - m3 - Ex_residual
//	E_thres = -Q (m2+m3) / (m2+m3-m1)
//
// and a decay is allowed when Q = Ex_in + m0 - m1 - m2 - Ex_residual >= 0.
//
// # Thread Safety
//
// Steps are immutable values. A Chain is not safe for concurrent AddStep,
// but any number of goroutines may call Verify on a chain nobody appends to.
package reaction
