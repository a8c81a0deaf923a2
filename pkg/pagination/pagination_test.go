package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParamsValidate(t *testing.T) {
	p := PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)

	p = PaginationParams{Page: 3, PerPage: 500}
	p.Validate()
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 200, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 15, 31)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	pag = NewPagination(1, 15, 10)
	assert.Equal(t, 1, pag.TotalPages)
	assert.False(t, pag.HasNext)
	assert.False(t, pag.HasPrev)
}

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)
	encoded := EncodeCursor("abc-123", createdAt)

	params := CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	assert.NoError(t, err)
	assert.Equal(t, "abc-123", cursor.ID)
	assert.True(t, createdAt.Equal(cursor.CreatedAt))
}

func TestDecodeCursorEmpty(t *testing.T) {
	params := CursorParams{}
	cursor, err := params.DecodeCursor()
	assert.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestDecodeCursorGarbage(t *testing.T) {
	params := CursorParams{Cursor: "not base64!!"}
	_, err := params.DecodeCursor()
	assert.Error(t, err)
}

type row struct {
	id      string
	created time.Time
}

func TestNewCursorPagination(t *testing.T) {
	base := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	rows := []row{
		{"a", base.Add(3 * time.Hour)},
		{"b", base.Add(2 * time.Hour)},
		{"c", base.Add(time.Hour)},
	}

	// Fetched limit+1, so one page remains
	page, items := NewCursorPagination(rows, 2,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.created })

	assert.Len(t, items, 2)
	assert.True(t, page.HasNext)
	assert.NotNil(t, page.NextCursor)

	cursor, err := (&CursorParams{Cursor: *page.NextCursor}).DecodeCursor()
	assert.NoError(t, err)
	assert.Equal(t, "b", cursor.ID)

	// Exactly the limit means the log is exhausted
	page, items = NewCursorPagination(rows[:2], 2,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.created })
	assert.Len(t, items, 2)
	assert.False(t, page.HasNext)
}
