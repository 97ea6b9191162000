package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisRecord_Accessors(t *testing.T) {
	record := AnalysisRecord{
		SourceID: "alice.pdf",
		Score:    70,
		Sections: []Section{
			{Name: ATSScoreSection, Content: "70%"},
			{Name: "Strengths", Content: NotFound},
		},
	}

	content, ok := record.Get(ATSScoreSection)
	assert.True(t, ok)
	assert.Equal(t, "70%", content)

	_, ok = record.Get("Hobbies")
	assert.False(t, ok)

	assert.Equal(t, "70%", record.Content(ATSScoreSection))
	assert.Equal(t, NotFound, record.Content("Hobbies"))

	assert.Equal(t, []string{ATSScoreSection, "Strengths"}, record.Names())
	assert.True(t, record.Found())
}

func TestAnalysisRecord_FoundAllSentinels(t *testing.T) {
	record := AnalysisRecord{Sections: []Section{{Name: "A", Content: NotFound}, {Name: "B", Content: NotFound}}}
	assert.False(t, record.Found())
	assert.False(t, AnalysisRecord{}.Found())
}

func TestBatchItem_Failed(t *testing.T) {
	assert.False(t, BatchItem{SourceID: "a"}.Failed())
	assert.True(t, BatchItem{SourceID: "a", Error: "no text extracted"}.Failed())
}
