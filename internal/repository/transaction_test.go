package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildListTransactionsQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    TransactionFilter
		page      PageQuery
		wantWhere string
		wantOrder string
		wantArgs  []any
	}{
		{
			name:      "newest transactions",
			page:      PageQuery{Limit: 20},
			wantWhere: "",
			wantOrder: "ORDER BY seq DESC LIMIT $1",
			wantArgs:  []any{20},
		},
		{
			name:      "address after cursor",
			filter:    TransactionFilter{Address: "DAG1"},
			page:      PageQuery{After: int64Ptr(42), Limit: 5},
			wantWhere: "WHERE (source = $1 OR destination = $1) AND seq < $2",
			wantOrder: "ORDER BY seq DESC LIMIT $3",
			wantArgs:  []any{"DAG1", int64(42), 5},
		},
		{
			name:      "snapshot before cursor",
			filter:    TransactionFilter{SnapshotHash: "abc"},
			page:      PageQuery{Before: int64Ptr(7), Limit: 10},
			wantWhere: "WHERE snapshot_hash = $1 AND seq > $2",
			wantOrder: "ORDER BY seq ASC LIMIT $3",
			wantArgs:  []any{"abc", int64(7), 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListTransactionsQuery(tt.filter, tt.page)

			if tt.wantWhere == "" {
				assert.NotContains(t, query, "WHERE")
			} else {
				assert.Contains(t, query, tt.wantWhere)
			}
			assert.Contains(t, query, tt.wantOrder)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
