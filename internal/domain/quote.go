package domain

type Quote struct {
	QuoteID     string `json:"id" dynamodbav:"quote_id"`
	SubCategory string `json:"sub_category" dynamodbav:"sub_category"`
	WrittenBy   string `json:"written_by" dynamodbav:"written_by"`
	Source      string `json:"source,omitempty" dynamodbav:"source"`
	Text        string `json:"quote" dynamodbav:"quote"`
	Enabled     bool   `json:"sts" dynamodbav:"sts"` // legacy field name preserved
	Audit
}

type QuoteInput struct {
	SubCategory string `json:"sub_category" validate:"required"`
	WrittenBy   string `json:"written_by" validate:"required"`
	Source      string `json:"source"`
	Text        string `json:"quote"`
	Enabled     *bool  `json:"sts"`
}

// QuoteListQuery carries the quote list endpoint's filters. Search is
// ignored below three characters, matching the legacy behavior.
type QuoteListQuery struct {
	Page     int
	Category string
	Search   string
}

// QuotePage is one page of a quote listing.
type QuotePage struct {
	Quotes      []Quote `json:"quotes"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
}
