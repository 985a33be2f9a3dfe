package fidelity

// MinimumFidelityScore is the fixed gate: assets scoring below it are never
// displayed. It is a system constant, not a per-call option.
const MinimumFidelityScore = 95.0

// Verdict is the outcome of validating one asset URL.
type Verdict struct {
	AssetURL string
	Passed   bool
	Score    float64
	Report   map[string]any
}

// newVerdict derives Passed from the score so the invariant
// Passed == (Score >= MinimumFidelityScore) holds by construction.
func newVerdict(assetURL string, score float64, report map[string]any) Verdict {
	return Verdict{
		AssetURL: assetURL,
		Passed:   score >= MinimumFidelityScore,
		Score:    score,
		Report:   report,
	}
}

// errorVerdict is the fail-closed synthetic verdict for transport or service
// failures. It always fails and is never cached.
func errorVerdict(assetURL string, err error) Verdict {
	return Verdict{
		AssetURL: assetURL,
		Passed:   false,
		Score:    0,
		Report:   map[string]any{"error": err.Error()},
	}
}
