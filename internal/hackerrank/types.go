package hackerrank

// Challenge links are built from these fragments around the slug.
const (
	kChallengeLinkPrefix = "https://www.hackerrank.com/challenges/"
	kChallengeLinkSuffix = "/problem?isFullScreen=true"
)

// Challenge is one catalog entry. Only the slug is kept from the response.
type Challenge struct {
	// Slug is the opaque, URL-safe identifier HackerRank uses for the challenge.
	Slug string `json:"slug"`
}

// Link returns the full-screen problem URL. The slug is inserted verbatim.
func (c Challenge) Link() string {
	return kChallengeLinkPrefix + c.Slug + kChallengeLinkSuffix
}
