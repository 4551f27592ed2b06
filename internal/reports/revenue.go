package reports

type revenueRow struct {
	Total float64 `bson:"total"`
}

// revenueTotal folds the single-row revenue group result. The group
// stage emits no row at all over an empty payments collection, so the
// empty case must read as zero revenue, not an index fault.
func revenueTotal(rows []revenueRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].Total
}
