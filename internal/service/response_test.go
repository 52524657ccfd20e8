package service

import (
	"testing"

	"github.com/golfcompete/golf-server/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKAndFailAreExclusive(t *testing.T) {
	ok := OK("payload")
	assert.Equal(t, StatusSuccess, ok.Status)
	require.NotNil(t, ok.Data)
	assert.Equal(t, "payload", *ok.Data)
	assert.Nil(t, ok.Error)
	assert.False(t, ok.Timestamp.IsZero())

	fail := Fail[string](NewError(CodeNotFound, "gone", nil))
	assert.Equal(t, StatusError, fail.Status)
	assert.Nil(t, fail.Data)
	require.NotNil(t, fail.Error)
	assert.Equal(t, CodeNotFound, fail.Error.Code)
}

func TestPageMetadata(t *testing.T) {
	cases := []struct {
		name       string
		total      uint64
		page       uint64
		limit      uint64
		totalPages uint64
		hasMore    bool
	}{
		{"exact multiple", 20, 1, 10, 2, true},
		{"partial last page", 21, 2, 10, 3, true},
		{"last page", 21, 3, 10, 3, false},
		{"empty", 0, 1, 10, 0, false},
		{"single page", 5, 1, 10, 1, false},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			response := Page([]int{}, testCase.total, query.Pagination{Page: testCase.page, Limit: testCase.limit})
			assert.Equal(t, testCase.totalPages, response.Metadata.TotalPages)
			assert.Equal(t, testCase.hasMore, response.Metadata.HasMore)
			assert.Equal(t, testCase.total, response.Metadata.Total)
		})
	}
}

func TestPageNeverReturnsNilData(t *testing.T) {
	response := Page[int](nil, 0, query.Pagination{Page: 1, Limit: 10})
	assert.NotNil(t, response.Data)
	assert.Empty(t, response.Data)
}

func TestFailPageZeroesTotals(t *testing.T) {
	response := FailPage[int](NewError(CodeQueryError, "boom", nil), query.Pagination{Page: 4, Limit: 25})

	assert.Equal(t, StatusError, response.Status)
	assert.Nil(t, response.Data)
	require.NotNil(t, response.Error)
	assert.Equal(t, Metadata{Page: 4, Limit: 25}, response.Metadata)
}
