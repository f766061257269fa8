package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolutionDuplicateIDs(t *testing.T) {
	tests := []struct {
		name       string
		resolution Resolution
		want       []string
	}{
		{
			name: "keep excludes kept id",
			resolution: Resolution{
				Type:           ResolutionDuplicate,
				KeepID:         "a",
				TransactionIDs: []string{"a", "b", "c"},
			},
			want: []string{"b", "c"},
		},
		{
			name: "unique removes nothing",
			resolution: Resolution{
				Type:           ResolutionUnique,
				TransactionIDs: []string{"a", "b"},
			},
			want: nil,
		},
		{
			name: "single kept transaction",
			resolution: Resolution{
				Type:           ResolutionDuplicate,
				KeepID:         "a",
				TransactionIDs: []string{"a"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resolution.DuplicateIDs())
		})
	}
}
