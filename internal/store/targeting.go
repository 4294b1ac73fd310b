package store

import (
	"context"
	"fmt"

	"github.com/dadidelux/sheng-project/internal/models"
	"github.com/dadidelux/sheng-project/pkg/apperrors"
)

// Both reports are fixed read-only queries over the survey table, grouped
// by province. Rates use NULLIF so a zero denominator yields SQL NULL and
// a JSON null, never NaN.

const coverageSQL = `
SELECT
    province_name,
    COUNT(*) AS total_households,
    COALESCE(SUM(poor), 0) AS total_poor,
    SUM(CASE WHEN poor = 1 AND received_pppp = 1 THEN 1 ELSE 0 END) AS poor_with_pppp,
    ROUND(SUM(CASE WHEN poor = 1 AND received_pppp = 1 THEN 1 ELSE 0 END)::numeric
        / NULLIF(SUM(poor), 0), 3) AS coverage_rate,
    SUM(CASE WHEN poor = 1 AND received_pppp = 0 THEN 1 ELSE 0 END) AS unmet_need
FROM poverty_data
GROUP BY province_name
ORDER BY coverage_rate ASC`

const efficiencySQL = `
SELECT
    province_name,
    SUM(received_pppp) AS total_recipients,
    SUM(CASE WHEN poor = 1 AND received_pppp = 1 THEN 1 ELSE 0 END) AS poor_recipients,
    SUM(CASE WHEN poor = 0 AND received_pppp = 1 THEN 1 ELSE 0 END) AS nonpoor_recipients,
    ROUND(SUM(CASE WHEN poor = 1 AND received_pppp = 1 THEN 1 ELSE 0 END)::numeric
        / NULLIF(SUM(received_pppp), 0), 3) AS targeting_accuracy,
    ROUND(SUM(CASE WHEN poor = 0 AND received_pppp = 1 THEN 1 ELSE 0 END)::numeric
        / NULLIF(SUM(received_pppp), 0), 3) AS leakage_rate
FROM poverty_data
WHERE received_pppp = 1
GROUP BY province_name
ORDER BY leakage_rate DESC`

// CoverageByProvince returns 4Ps coverage metrics per province, ordered
// worst-covered first.
func (s *Store) CoverageByProvince(ctx context.Context) ([]models.CoverageMetrics, error) {
	rows, err := s.pool.Query(ctx, coverageSQL)
	if err != nil {
		return nil, apperrors.Store(fmt.Errorf("coverage query: %w", err))
	}
	defer rows.Close()

	out := make([]models.CoverageMetrics, 0)
	for rows.Next() {
		var m models.CoverageMetrics
		if err := rows.Scan(&m.ProvinceName, &m.TotalHouseholds, &m.TotalPoor,
			&m.PoorWithPPPP, &m.CoverageRate, &m.UnmetNeed); err != nil {
			return nil, apperrors.Store(fmt.Errorf("scan coverage row: %w", err))
		}
		m.Location = m.ProvinceName
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(fmt.Errorf("coverage rows: %w", err))
	}
	return out, nil
}

// EfficiencyByProvince returns targeting efficiency metrics per province,
// ordered worst leakage first. Provinces without recipients are excluded
// by the WHERE clause.
func (s *Store) EfficiencyByProvince(ctx context.Context) ([]models.EfficiencyMetrics, error) {
	rows, err := s.pool.Query(ctx, efficiencySQL)
	if err != nil {
		return nil, apperrors.Store(fmt.Errorf("efficiency query: %w", err))
	}
	defer rows.Close()

	out := make([]models.EfficiencyMetrics, 0)
	for rows.Next() {
		var m models.EfficiencyMetrics
		if err := rows.Scan(&m.Location, &m.TotalRecipients, &m.PoorRecipients,
			&m.NonPoorRecipients, &m.TargetingAccuracy, &m.LeakageRate); err != nil {
			return nil, apperrors.Store(fmt.Errorf("scan efficiency row: %w", err))
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(fmt.Errorf("efficiency rows: %w", err))
	}
	return out, nil
}
