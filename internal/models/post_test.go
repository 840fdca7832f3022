package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncTagsText(t *testing.T) {
	p := PostModel{Tags: StringSlice{"foam", "latex", "king-size"}}
	p.SyncTagsText()
	assert.Equal(t, "foam latex king-size", p.TagsText)

	p.Tags = nil
	p.SyncTagsText()
	assert.Empty(t, p.TagsText)
}

func TestIsDeleted(t *testing.T) {
	p := PostModel{Status: PostStatusActive}
	assert.False(t, p.IsDeleted())

	p.Status = PostStatusDeleted
	assert.True(t, p.IsDeleted())
}
