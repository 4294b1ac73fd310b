package models

// DataTableResponse is one page of a filtered table view.
type DataTableResponse struct {
	Data       []map[string]any `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// ColumnInfo describes one selectable column of a table.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CoverageMetrics is the 4Ps coverage report row for one province.
// CoverageRate is nil when the province has no poverty-flagged households;
// the zero denominator must surface as JSON null, never NaN.
type CoverageMetrics struct {
	Location        string   `json:"location"`
	ProvinceName    string   `json:"province_name"`
	CityName        *string  `json:"city_name"`
	TotalHouseholds int64    `json:"total_households"`
	TotalPoor       int64    `json:"total_poor"`
	PoorWithPPPP    int64    `json:"poor_with_pppp"`
	CoverageRate    *float64 `json:"coverage_rate"`
	UnmetNeed       int64    `json:"unmet_need"`
}

// EfficiencyMetrics is the targeting efficiency report row for one province.
type EfficiencyMetrics struct {
	Location          string   `json:"location"`
	TotalRecipients   int64    `json:"total_recipients"`
	PoorRecipients    int64    `json:"poor_recipients"`
	NonPoorRecipients int64    `json:"nonpoor_recipients"`
	TargetingAccuracy *float64 `json:"targeting_accuracy"`
	LeakageRate       *float64 `json:"leakage_rate"`
}
