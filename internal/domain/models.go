package domain

// Domain contains the payloads exchanged with the shorten API.

// Invocation is what a single run was asked to do.
type Invocation struct {
	APIKey  string
	LongURL string
}

// ShortenRequest is the body of a shorten call.
type ShortenRequest struct {
	LongURL string `json:"long_url"`
}

// ShortenResponse is the success payload of the Bitly v4 shorten call.
type ShortenResponse struct {
	CreatedAt      string   `json:"created_at"`
	ID             string   `json:"id"`
	Link           string   `json:"link"`
	CustomBitlinks []string `json:"custom_bitlinks"`
	LongURL        string   `json:"long_url"`
	Archived       bool     `json:"archived"`
	Tags           []string `json:"tags"`
	References     struct {
		Group string `json:"group"`
	} `json:"references"`
}
