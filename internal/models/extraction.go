// internal/models/extraction.go
package models

// Keys of a document extraction record.
const (
	FieldFounderInfo   = "founderInfo"
	FieldBusinessModel = "businessModel"
	FieldFinancials    = "financials"
	FieldMarket        = "market"
	FieldProduct       = "product"
	FieldSources       = "sources"
	FieldHighlights    = "highlights"
)

// DocumentRecord is the merged output of the document extractor.
type DocumentRecord = Record

type VoiceRecord struct {
	Sentiment  string   `json:"sentiment"`
	KeyPoints  []string `json:"keyPoints"`
	Confidence float64  `json:"confidence,omitempty"`
	Duration   float64  `json:"duration,omitempty"`
}

type PublicDataRecord struct {
	MarketData  Record         `json:"marketData"`
	Competitors []Competitor   `json:"competitors"`
	News        []NewsItem     `json:"news,omitempty"`
	Funding     []FundingRound `json:"funding,omitempty"`
}

type Competitor struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Funding     float64 `json:"funding,omitempty"`
}

type NewsItem struct {
	Title     string `json:"title"`
	Source    string `json:"source,omitempty"`
	Date      string `json:"date,omitempty"`
	Sentiment string `json:"sentiment,omitempty"`
}

type FundingRound struct {
	Round     string   `json:"round"`
	Amount    float64  `json:"amount"`
	Date      string   `json:"date,omitempty"`
	Investors []string `json:"investors,omitempty"`
}

// ExtractionBundle carries the three phase-one outputs into consolidation.
type ExtractionBundle struct {
	Documents  DocumentRecord    `json:"documents"`
	Voice      *VoiceRecord      `json:"voice"`
	PublicData *PublicDataRecord `json:"publicData"`
}

// ConsolidatedView groups the merged extraction data by domain.
type ConsolidatedView struct {
	FounderData  FounderData  `json:"founderData"`
	MarketData   MarketData   `json:"marketData"`
	BusinessData BusinessData `json:"businessData"`
	ProductData  ProductData  `json:"productData"`
}

type FounderData struct {
	Profile    Record   `json:"profile"`
	Sentiment  string   `json:"sentiment,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	KeyPoints  []string `json:"keyPoints"`
}

type MarketData struct {
	Attributes  Record       `json:"attributes"`
	Competitors []Competitor `json:"competitors"`
	News        []NewsItem   `json:"news"`
}

type BusinessData struct {
	Attributes    Record   `json:"attributes"`
	VoiceInsights []string `json:"voiceInsights"`
}

type ProductData struct {
	Attributes Record `json:"attributes"`
}
