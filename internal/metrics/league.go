package metrics

// LeagueTier is a coarse bucket assigned from total P&L.
type LeagueTier string

const (
	TierBronze   LeagueTier = "bronze"
	TierSilver   LeagueTier = "silver"
	TierGold     LeagueTier = "gold"
	TierPlatinum LeagueTier = "platinum"
	TierDiamond  LeagueTier = "diamond"
)

// TierFor returns the tier for totalPnL. Each threshold belongs to the higher tier.
func TierFor(totalPnL float64) LeagueTier {
	switch {
	case totalPnL >= 10000:
		return TierDiamond
	case totalPnL >= 5000:
		return TierPlatinum
	case totalPnL >= 2000:
		return TierGold
	case totalPnL >= 500:
		return TierSilver
	default:
		return TierBronze
	}
}
