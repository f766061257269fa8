package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateQualityScore(t *testing.T) {
	period := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		result ExtractionResult
		want   float64
	}{
		{
			name:   "no transactions scores zero",
			result: ExtractionResult{AccountNumber: "1234", PeriodStart: period, PeriodEnd: period},
			want:   0,
		},
		{
			name: "full confidence with full metadata",
			result: ExtractionResult{
				AccountNumber: "1234",
				PeriodStart:   period,
				PeriodEnd:     period,
				Transactions:  []Transaction{{Confidence: 1.0}, {Confidence: 1.0}},
			},
			want: 1.0,
		},
		{
			name: "mean of mixed confidences",
			result: ExtractionResult{
				AccountNumber: "1234",
				PeriodStart:   period,
				PeriodEnd:     period,
				Transactions:  []Transaction{{Confidence: 1.0}, {Confidence: 0.8}},
			},
			want: 0.9,
		},
		{
			name: "missing account penalized",
			result: ExtractionResult{
				PeriodStart:  period,
				PeriodEnd:    period,
				Transactions: []Transaction{{Confidence: 1.0}},
			},
			want: 0.95,
		},
		{
			name: "missing period penalized",
			result: ExtractionResult{
				AccountNumber: "1234",
				Transactions:  []Transaction{{Confidence: 1.0}},
			},
			want: 0.98,
		},
		{
			name: "both penalties stack",
			result: ExtractionResult{
				Transactions: []Transaction{{Confidence: 1.0}},
			},
			want: 0.93,
		},
		{
			name: "clamped at zero",
			result: ExtractionResult{
				Transactions: []Transaction{{Confidence: 0.01}},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.result.CalculateQualityScore(), 1e-9)
		})
	}
}

func TestBatchResultTransactionCount(t *testing.T) {
	batch := BatchResult{
		Results: []ExtractionResult{
			{Transactions: []Transaction{{}, {}}},
			{},
			{Transactions: []Transaction{{}}},
		},
	}
	assert.Equal(t, 3, batch.TransactionCount())

	empty := BatchResult{}
	assert.Equal(t, 0, empty.TransactionCount())
}
