package types

// NewsItem is one headline about a company.
type NewsItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// CompanyProfile is what public research found about a company. News is never nil.
type CompanyProfile struct {
	Company string     `json:"company"`
	Website string     `json:"website,omitempty"`
	News    []NewsItem `json:"news"`
}
