package exam

// Tier is the badge awarded for a score.
type Tier struct {
	Label string
	Badge string // Short badge name shown next to the label
	Min   int    // Lowest score that earns this tier
}

// Tiers are ordered from best to worst.
var Tiers = []Tier{
	{Label: "Master Detective", Badge: "Gold Award", Min: 90},
	{Label: "Senior Sleuth", Badge: "Silver Medal", Min: 70},
	{Label: "Junior Agent", Badge: "Bronze Star", Min: 0},
}

// Classify returns the tier for score. Thresholds are inclusive.
func Classify(score int) Tier {
	for _, t := range Tiers {
		if score >= t.Min {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}
