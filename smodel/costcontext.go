package smodel

// CostContext is the shared cost-normalization scale installed by
// minimize-cost's PrepareCost and read by cost-modifier rules
// (day-cost-multiplier, overtime-*, etc.) so every rule prices its penalty
// on the same objective scale.
type CostContext struct {
	NormFactor float64
	Installed  bool
}
