package model

// Revenue is one precomputed monthly aggregate from the `revenue` table.
// Month is unique.
type Revenue struct {
    Month   string `json:"month"`   // revenue.month
    Revenue int64  `json:"revenue"` // revenue.revenue
}
