// Package outreach fills message templates for offer negotiation and networking.
package outreach

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-tracker/internal/types"
)

// Placeholders stand in for figures the candidate has not supplied.
const (
	PlaceholderBase   = "[X]"
	PlaceholderBonus  = "[Y]%"
	PlaceholderEquity = "[Z]"
)

// NegotiationScript builds a salary negotiation script from an offer. Paragraphs are
// separated by a blank line; the bonus and equity paragraphs appear only when the offer
// carries those components.
func NegotiationScript(offer types.Offer) string {
	role := or(offer.Role, "role")
	company := or(offer.Company, "your company")
	targetBase := or(string(offer.Target.Base), PlaceholderBase)

	paragraphs := []string{
		fmt.Sprintf("Thank you for the offer for the %s at %s.", role, company),
	}

	targeting := "Based on market data and my experience, I was targeting a base of " + targetBase
	if loc := strings.TrimSpace(offer.Location); loc != "" {
		targeting += " for " + loc
	}
	paragraphs = append(paragraphs, targeting+".")

	if offer.Base != "" {
		paragraphs = append(paragraphs, fmt.Sprintf("Given the current offer base of %s, is there flexibility to move closer to %s?", offer.Base, targetBase))
	}
	if offer.Bonus != "" {
		paragraphs = append(paragraphs, fmt.Sprintf("On bonus, I was hoping for %s vs the current %s.", or(string(offer.Target.Bonus), PlaceholderBonus), offer.Bonus))
	}
	if offer.Equity != "" {
		paragraphs = append(paragraphs, fmt.Sprintf("For equity, I was targeting %s to better align with long-term impact.", or(string(offer.Target.Equity), PlaceholderEquity)))
	}
	paragraphs = append(paragraphs, "I'm excited about the team and can sign quickly if we can get closer to these numbers.")

	return strings.Join(paragraphs, "\n\n")
}

// NetworkingMessage builds a short referral request to a contact.
func NetworkingMessage(c types.Contact) string {
	return fmt.Sprintf("Hi %s,\n\nI hope you're well! I'm exploring %s opportunities at %s. "+
		"Given your %s, I'd value any insights into the team or referral guidance.\n\n"+
		"Happy to share my resume; thanks in advance!",
		or(c.TargetName, "there"), or(c.Role, "a role"), or(c.Company, "your company"), or(c.Relationship, "connection"))
}

func or(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
