package domain

const (
	// MistPerToken is the number of minor units in one whole token
	MistPerToken = 1_000_000_000

	// DefaultListenPriceMist is the per-listen fee (0.001 token)
	DefaultListenPriceMist = 1_000_000

	// PredictionStakeMist is the fixed stake amount for the popularity
	// prediction game (0.001 token)
	PredictionStakeMist = 1_000_000

	// PredictionLockEpochs is the default stake lock period
	PredictionLockEpochs = 1

	// MaxBasisPoints is the full-rate royalty bound (100%)
	MaxBasisPoints = 10_000

	// ClockObjectID is the ledger's shared clock object
	ClockObjectID = "0x6"
)

// MistToSui converts minor units to a display amount of whole tokens
func MistToSui(mist uint64) float64 {
	return float64(mist) / MistPerToken
}

// SuiToMist converts a whole-token amount to minor units, truncating
func SuiToMist(sui float64) uint64 {
	if sui <= 0 {
		return 0
	}
	return uint64(sui * MistPerToken)
}

// BasisPointsToPercent converts a royalty rate in basis points to a percentage
func BasisPointsToPercent(bps uint16) float64 {
	return float64(bps) / 100
}
