package dto

// ChallengeQuery narrows the challenge listing.
type ChallengeQuery struct {
	ActiveOnly  bool
	SponsorID   *string
	SeasonID    *string
	SearchQuery string
}
