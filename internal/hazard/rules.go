package hazard

// Rules holds the scoring and submission parameters.
type Rules struct {
	VoteThreshold   int  // votes needed to decide a hazard either way
	ReporterBonus   int  // awarded to the reporter when a hazard is validated
	VoterReward     int  // awarded to every voter per ballot
	NGOResolveBonus int  // awarded to NGO accounts for resolving
	AllowSelfVote   bool // whether reporters may vote on their own hazards

	MinDescription int   // minimum description length in characters
	MaxImageBytes  int64 // zero means unlimited
}

// DefaultRules returns the standard scoring.
func DefaultRules() Rules {
	return Rules{
		VoteThreshold:   3,
		ReporterBonus:   10,
		VoterReward:     1,
		NGOResolveBonus: 5,
		AllowSelfVote:   true,
		MinDescription:  10,
		MaxImageBytes:   5 << 20,
	}
}
