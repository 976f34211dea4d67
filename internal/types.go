package internal

type ItemSource string

const (
	SourceXLSX      ItemSource = "xlsx"
	SourceHTMLTable ItemSource = "html_table"
	SourcePDF       ItemSource = "pdf"
)

// InputItem is one requested slide: an item number and an optional
// display name taken from the user file.
type InputItem struct {
	LineNo      int
	Source      ItemSource
	ItemNo      string
	ProductName string
}

type ItemStatus string

const (
	ItemRendered ItemStatus = "RENDERED"
	ItemSkipped  ItemStatus = "SKIPPED"
)

// ItemOutcome records what happened to a single input item during a
// run. SlideIndex is the zero-based position in the output deck, -1
// when no slide was produced.
type ItemOutcome struct {
	LineNo     int
	ItemNo     string
	Source     ItemSource
	Status     ItemStatus
	SlideIndex int
	Texts      int
	Links      int
	Images     int
	Warnings   []string
}

type RunSummary struct {
	TraceID  string
	Items    int
	Rendered int
	Skipped  int
	Warnings int
}

type RunRow struct {
	ID        int
	TraceID   string
	StartedAt string
	Items     int
	Rendered  int
	Skipped   int
	Warnings  int
}

type RunReportRow struct {
	LineNo     int
	ItemNo     string
	Source     string
	Status     string
	SlideIndex *int
	Texts      int
	Links      int
	Images     int
	Warnings   []string
}
