package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratorRejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.Categories = 0 // products cannot sample a category

	gen, err := NewGenerator(nil, p)
	require.Nil(t, gen)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestNewGeneratorDefaultsSeed(t *testing.T) {
	p := DefaultParams()

	gen, err := NewGenerator(nil, p)
	require.NoError(t, err)
	assert.Equal(t, p, gen.Params())
	assert.NotNil(t, gen.rng)
}

func TestLinkInsertSQLSingleRow(t *testing.T) {
	sql := linkInsertSQL(1)

	assert.Equal(t,
		"INSERT INTO product_tag (tag_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		sql)
}

func TestLinkInsertSQLManyRows(t *testing.T) {
	const n = 250
	sql := linkInsertSQL(n)

	assert.Equal(t, n+1, strings.Count(sql, "("), "one value group per pair plus the column list")
	assert.Contains(t, sql, "($1, $2)")
	assert.Contains(t, sql, "($499, $500)")
	assert.True(t, strings.HasSuffix(sql, "ON CONFLICT DO NOTHING"))
}

func TestMaxLinkBatchFitsParameterLimit(t *testing.T) {
	// Two bind parameters per pair; the wire protocol allows 65535.
	assert.LessOrEqual(t, maxLinkBatch*2, 65535)
}
