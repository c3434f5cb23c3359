package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{name: "canonical", input: "Word", want: CategoryWord},
		{name: "lowercase", input: "fact", want: CategoryFact},
		{name: "uppercase", input: "QUOTE", want: CategoryQuote},
		{name: "mixed", input: "iNsIgHt", want: CategoryInsight},
		{name: "unknown", input: "Recipe", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntryPayload_Validate(t *testing.T) {
	valid := EntryPayload{Title: "Petrichor", Content: "Smell of rain.", Category: CategoryWord}
	require.NoError(t, valid.Validate())

	noTitle := valid
	noTitle.Title = ""
	assert.ErrorIs(t, noTitle.Validate(), ErrTitleRequired)

	noContent := valid
	noContent.Content = ""
	assert.ErrorIs(t, noContent.Validate(), ErrContentRequired)

	badCategory := valid
	badCategory.Category = "Recipe"
	assert.ErrorIs(t, badCategory.Validate(), ErrUnknownCategory)
}

func TestListFilter_Query(t *testing.T) {
	fav := true
	f := ListFilter{Category: CategoryWord, Search: "petri", IsFavorite: &fav, Skip: 20, Limit: 10}
	q := f.Query()

	assert.Equal(t, "Word", q.Get("category"))
	assert.Equal(t, "petri", q.Get("search"))
	assert.Equal(t, "true", q.Get("is_favorite"))
	assert.Equal(t, "20", q.Get("skip"))
	assert.Equal(t, "10", q.Get("limit"))
}

func TestListFilter_Query_ZeroValuesOmitted(t *testing.T) {
	q := ListFilter{}.Query()
	assert.Empty(t, q.Encode())
}

func TestEntryUpdate_Empty(t *testing.T) {
	assert.True(t, EntryUpdate{}.Empty())

	title := "New title"
	assert.False(t, EntryUpdate{Title: &title}.Empty())
}
