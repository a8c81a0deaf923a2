package enum

// StockSource identifies what kind of operation produced a stock movement.
type StockSource string

const (
	StockSourcePurchase StockSource = "purchase"
	StockSourceSale     StockSource = "sale"
	StockSourceManual   StockSource = "manual"
)

// IsValid reports whether s is a known stock source.
func (s StockSource) IsValid() bool {
	switch s {
	case StockSourcePurchase, StockSourceSale, StockSourceManual:
		return true
	}
	return false
}

func (s StockSource) String() string {
	return string(s)
}
