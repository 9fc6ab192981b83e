package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/internal/config"
)

func TestRecentSalesQuery(t *testing.T) {
	query, args, err := recentSalesQuery(10).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT s.id, s.date, s.amount, s.product FROM sales s ORDER BY s.date DESC, s.id DESC LIMIT 10", query)
	assert.Empty(t, args)
}

func TestTotalAmountQuery(t *testing.T) {
	query, _, err := totalAmountQuery().ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COALESCE(SUM(s.amount), 0) FROM sales s", query)
}

func TestTrendQuery(t *testing.T) {
	since := time.Date(2024, 1, 8, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		bucket   string
		expected string
	}{
		{
			name:     "Intervalo pelo valor bruto da data",
			bucket:   config.TrendBucketTimestamp,
			expected: "SELECT s.date AS bucket, SUM(s.amount) AS amount FROM sales s WHERE s.date >= $1 GROUP BY bucket ORDER BY bucket ASC",
		},
		{
			name:     "Intervalo truncado por dia",
			bucket:   config.TrendBucketDay,
			expected: "SELECT date_trunc('day', s.date) AS bucket, SUM(s.amount) AS amount FROM sales s WHERE s.date >= $1 GROUP BY bucket ORDER BY bucket ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := trendQuery(since, tt.bucket).ToSql()
			require.NoError(t, err)

			assert.Equal(t, tt.expected, query)
			assert.Equal(t, []interface{}{since}, args)
		})
	}
}

func TestCountCustomersQuery(t *testing.T) {
	query, args, err := countCustomersQuery(false).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM customers c", query)
	assert.Empty(t, args)

	query, args, err = countCustomersQuery(true).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM customers c WHERE c.active = $1", query)
	assert.Equal(t, []interface{}{true}, args)
}

func TestAverageRetentionQuery(t *testing.T) {
	query, args, err := averageRetentionQuery().ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COALESCE(AVG(c.retention_rate), 0) FROM customers c WHERE c.active = $1", query)
	assert.Equal(t, []interface{}{true}, args)
}
