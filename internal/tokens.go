package internal

// Placeholder vocabulary. Token names are the bare identifiers that
// appear between double braces in the template; the mapping workbook
// carries the braced forms as column headers.

const (
	TokenProductName     = "Product name"
	TokenProductCode     = "Product code"
	TokenCountryOfOrigin = "Product country of origin"
	TokenHeight          = "Product height"
	TokenWidth           = "Product width"
	TokenLength          = "Product length"
	TokenDepth           = "Product depth"
	TokenSeatHeight      = "Product seat height"
	TokenDiameter        = "Product diameter"
	TokenCertificate     = "CertificateName"
	TokenConsumptionCOM  = "Product Consumption COM"
	TokenFactSheetLink   = "Product Fact Sheet link"
	TokenConfiguratorURL = "Product configurator link"
	TokenPackshot1       = "Product Packshot1"
	TokenLifestyle1      = "Product Lifestyle1"
	TokenLifestyle2      = "Product Lifestyle2"
	TokenLifestyle3      = "Product Lifestyle3"
	TokenLifestyle4      = "Product Lifestyle4"

	// Synthesized by the availability aggregator; not backed by a
	// mapping column.
	TokenRTS = "Product RTS"
	TokenMTO = "Product MTO"
)

// TextTokenLabels maps each text token to the label that prefixes its
// resolved value on the slide.
var TextTokenLabels = map[string]string{
	TokenProductName:     "Product Name:",
	TokenProductCode:     "Product Code:",
	TokenCountryOfOrigin: "Country of origin:",
	TokenHeight:          "Height:",
	TokenWidth:           "Width:",
	TokenLength:          "Length:",
	TokenDepth:           "Depth:",
	TokenSeatHeight:      "Seat Height:",
	TokenDiameter:        "Diameter:",
	TokenCertificate:     "Test & certificates for the product:",
	TokenConsumptionCOM:  "Consumption information for COM:",
}

// SameLineTokens join label and value with a single space; the rest
// force a line break between them.
var SameLineTokens = map[string]bool{
	TokenProductName:     true,
	TokenProductCode:     true,
	TokenCountryOfOrigin: true,
}

// DoubleBreakTokens put a blank line between label and value.
var DoubleBreakTokens = map[string]bool{
	TokenCertificate:    true,
	TokenConsumptionCOM: true,
}

var HyperlinkTokenLabels = map[string]string{
	TokenFactSheetLink:   "Download Product Fact Sheet",
	TokenConfiguratorURL: "Click to configure product",
}

var ImageTokens = []string{
	TokenPackshot1,
	TokenLifestyle1,
	TokenLifestyle2,
	TokenLifestyle3,
	TokenLifestyle4,
}

const (
	LabelRTS = "Product in stock versions:"
	LabelMTO = "Available for made to order:"
)

// Mapping workbook columns, in their original spelling. ProductKey is
// the internal grouping key joining the mapping row to the stock file;
// the rest are the braced token headers.
const MappingProductKeyColumn = "ProductKey"

func RequiredMappingColumns() []string {
	out := make([]string, 0, 24)
	for _, tok := range []string{
		TokenProductName, TokenProductCode, TokenCountryOfOrigin,
		TokenHeight, TokenWidth, TokenLength, TokenDepth,
		TokenSeatHeight, TokenDiameter, TokenCertificate,
		TokenConsumptionCOM, TokenFactSheetLink, TokenConfiguratorURL,
	} {
		out = append(out, "{{"+tok+"}}")
	}
	for _, tok := range ImageTokens {
		out = append(out, "{{"+tok+"}}")
	}
	return append(out, MappingProductKeyColumn)
}

// Stock workbook columns.
const (
	StockProductKeyColumn = "productkey"
	StockVariantColumn    = "variantname"
	StockRTSColumn        = "rts"
	StockMTOColumn        = "mto"
)

func RequiredStockColumns() []string {
	return []string{StockProductKeyColumn, StockVariantColumn, StockRTSColumn, StockMTOColumn}
}

// User item file columns.
const (
	UserItemNoColumn      = "Item no"
	UserProductNameColumn = "Product name"
)
