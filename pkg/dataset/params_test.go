package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	assert.Equal(t, 100, p.Categories)
	assert.Equal(t, 500, p.Tags)
	assert.Equal(t, 1_000_000, p.Products)
	assert.Equal(t, 5_000_000, p.Links)
	assert.Equal(t, 10_000, p.BatchSize)
	assert.False(t, p.WithLinks, "link generation is off by default")

	require.NoError(t, p.Validate())
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Params)
		wantField string
	}{
		{
			name:   "defaults are valid",
			mutate: func(p *Params) {},
		},
		{
			name:   "empty dataset is valid",
			mutate: func(p *Params) { p.Categories, p.Tags, p.Products = 0, 0, 0 },
		},
		{
			name:      "negative categories",
			mutate:    func(p *Params) { p.Categories = -1 },
			wantField: "categories",
		},
		{
			name:      "negative tags",
			mutate:    func(p *Params) { p.Tags = -5 },
			wantField: "tags",
		},
		{
			name:      "negative products",
			mutate:    func(p *Params) { p.Products = -1 },
			wantField: "products",
		},
		{
			name:      "negative links",
			mutate:    func(p *Params) { p.Links = -1 },
			wantField: "links",
		},
		{
			name:      "zero batch size",
			mutate:    func(p *Params) { p.BatchSize = 0 },
			wantField: "batch-size",
		},
		{
			name:      "products without categories",
			mutate:    func(p *Params) { p.Categories = 0 },
			wantField: "categories",
		},
		{
			name:      "links without tags",
			mutate:    func(p *Params) { p.WithLinks = true; p.Tags = 0 },
			wantField: "tags",
		},
		{
			name: "links without products",
			mutate: func(p *Params) {
				p.WithLinks = true
				p.Categories, p.Products = 0, 0
			},
			wantField: "products",
		},
		{
			name:   "zero link attempts with links enabled",
			mutate: func(p *Params) { p.WithLinks = true; p.Links = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParams)

			var paramErr *ParamError
			require.True(t, errors.As(err, &paramErr))
			assert.Equal(t, tt.wantField, paramErr.Field)
		})
	}
}
