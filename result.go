package leadscout

// Result is the immutable snapshot produced at the end of a crawl.
// Emails are lexicographically sorted; ImportantPages preserves the order
// in which important pages completed.
type Result struct {
	BaseURL        string   `json:"base_url"`
	PagesScraped   int      `json:"pages_scraped"`
	Emails         []string `json:"emails_found"`
	ImportantPages []string `json:"important_pages"`
	TotalEmails    int      `json:"total_emails"`
}
