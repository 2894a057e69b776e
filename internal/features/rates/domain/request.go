package domain

// RateRequest asks for the price of one zone pair and weight.
type RateRequest struct {
	ZoneFrom       Zone
	ZoneTo         Zone
	WeightSlab     float64
	PackageWeight  float64
	UserID         string
	PreferUserRate bool
}

// BulkItem is one entry of a bulk rate request.
type BulkItem struct {
	ZoneFrom      Zone
	ZoneTo        Zone
	WeightSlab    float64
	PackageWeight float64
}

// BulkResult is the outcome for the BulkItem at the same index.
type BulkResult struct {
	Resolved *Resolved
	Err      error
}

// QuoteRequest asks for a quote between two pincodes.
type QuoteRequest struct {
	OriginPincode      string
	DestinationPincode string
	PackageWeight      float64
	UserID             string
	DeclaredValue      float64
	InsuranceSelected  bool
}

// BulkQuoteResult is the outcome for the QuoteRequest at the same index.
type BulkQuoteResult struct {
	Quote *Quote
	Err   error
}
