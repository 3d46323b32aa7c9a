package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Amount is a compensation figure. It decodes from a JSON string or number.
type Amount string

// UnmarshalJSON accepts "150k", 150000 or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// Offer describes a job offer and the figures the candidate is aiming for.
type Offer struct {
	Company  string      `json:"company"`
	Role     string      `json:"role"`
	Location string      `json:"location"`
	Base     Amount      `json:"base"`
	Bonus    Amount      `json:"bonus"`
	Equity   Amount      `json:"equity"`
	Target   OfferTarget `json:"target"`
}

// OfferTarget holds the figures the candidate wants.
type OfferTarget struct {
	Base   Amount `json:"base"`
	Bonus  Amount `json:"bonus"`
	Equity Amount `json:"equity"`
}

// Contact is someone the candidate wants to reach out to.
type Contact struct {
	TargetName   string `json:"targetName"`
	Role         string `json:"role"`
	Company      string `json:"company"`
	Relationship string `json:"relationship"`
}
