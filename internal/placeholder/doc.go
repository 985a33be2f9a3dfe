// Package placeholder produces the branded stand-in shown for any product
// without a verified, loadable model.
//
// Both failure paths converge here: a verdict below the fidelity gate and a
// load failure after a passing verdict yield structurally identical entities,
// so the scene never shows a hole and never reveals which path failed.
package placeholder
