package validator

import "time"

// Claims is what a successful validation places in the request context.
type Claims struct {
	// Expiry is the token's exp claim.
	Expiry time.Time

	// Raw holds every claim of the token, registered or not.
	Raw map[string]any
}

// Subject returns the sub claim, or "" if the token has none.
func (c *Claims) Subject() string {
	if c == nil {
		return ""
	}
	sub, _ := c.Raw["sub"].(string)
	return sub
}
