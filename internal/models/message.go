package models

// Message kinds as they appear in the export.
const (
	TypeText        = "text"
	TypeMedia       = "media"
	TypeLink        = "link"
	TypePlaceholder = "placeholder"
)

// MediaRef points at one attachment by its export-relative URI.
type MediaRef struct {
	URI string `json:"uri"`
}

// Reaction is an emoji reaction left on a message.
type Reaction struct {
	Actor    string `json:"actor"`
	Reaction string `json:"reaction"`
}

// Message is one archived message. ID equals the message's position in the
// original export and is assigned once at load time.
type Message struct {
	ID         int        `json:"id"`
	SenderName string     `json:"senderName"`
	Text       string     `json:"text"`
	Timestamp  int64      `json:"timestamp"`
	Type       string     `json:"type"`
	Media      []MediaRef `json:"media"`
	Reactions  []Reaction `json:"reactions"`
	IsUnsent   bool       `json:"isUnsent"`
	ShareLink  string     `json:"shareLink,omitempty"`
}

// DaySummary describes one calendar day of the conversation.
type DaySummary struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Page is one page of a filtered message listing.
type Page struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}

// Thread is the export header: the participant names and the thread title.
type Thread struct {
	Participants []string `json:"participants"`
	ThreadName   string   `json:"threadName"`
}
