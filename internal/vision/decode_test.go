package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docscan/internal/models"
)

func TestDecodeAnalysisPlainObject(t *testing.T) {
	content := `{"documentType":"receipt","confidence":0.93,"language":{"code":"en","name":"English","confidence":0.99},"data":{"total":"12.50","merchant":"Cafe"},"rawText":"Cafe total 12.50","tags":["food"],"warnings":[]}`

	res := decodeAnalysis(content)

	require.True(t, res.Success)
	assert.Equal(t, "receipt", res.DocumentType)
	assert.InDelta(t, 0.93, res.Confidence, 0.0001)
	assert.Equal(t, "en", res.Language.Code)
	assert.Equal(t, "12.50", res.Data["total"])
	assert.Equal(t, "Cafe total 12.50", res.RawText)
	assert.Equal(t, []string{"food"}, res.Tags)
}

func TestDecodeAnalysisFencedJSON(t *testing.T) {
	content := "```json\n{\"documentType\":\"invoice\",\"confidence\":0.8}\n```"

	res := decodeAnalysis(content)

	assert.Equal(t, "invoice", res.DocumentType)
	assert.InDelta(t, 0.8, res.Confidence, 0.0001)
}

func TestDecodeAnalysisProseAroundObject(t *testing.T) {
	content := `Sure, here is the result: {"documentType":"letter","confidence":0.5} hope this helps`

	res := decodeAnalysis(content)

	assert.Equal(t, "letter", res.DocumentType)
}

func TestDecodeAnalysisNestedUnderData(t *testing.T) {
	content := `{"data":{"documentType":"passport","confidence":0.7,"data":{"number":"X123"}}}`

	res := decodeAnalysis(content)

	assert.Equal(t, "passport", res.DocumentType)
	assert.Equal(t, "X123", res.Data["number"])
}

func TestDecodeAnalysisAlternateKeys(t *testing.T) {
	content := `{"document_type":"id_card","confidence":0.6,"text":"ID CARD"}`

	res := decodeAnalysis(content)

	assert.Equal(t, "id_card", res.DocumentType)
	assert.Equal(t, "ID CARD", res.RawText)
}

func TestDecodeAnalysisUnstructuredText(t *testing.T) {
	content := "This looks like a grocery receipt from a supermarket."

	res := decodeAnalysis(content)

	assert.True(t, res.Success)
	assert.Equal(t, models.DocumentTypeUnknown, res.DocumentType)
	assert.InDelta(t, 0.2, res.Confidence, 0.0001)
	assert.Equal(t, content, res.RawText)
	assert.Contains(t, res.Warnings, "response was not structured")
}

func TestDecodeAnalysisObjectWithoutType(t *testing.T) {
	res := decodeAnalysis(`{"confidence":0.9}`)

	assert.Equal(t, models.DocumentTypeUnknown, res.DocumentType)
	assert.InDelta(t, 0.2, res.Confidence, 0.0001)
}

func TestDecodeAnalysisClampsConfidence(t *testing.T) {
	res := decodeAnalysis(`{"documentType":"note","confidence":3.5}`)
	assert.Equal(t, 1.0, res.Confidence)

	res = decodeAnalysis(`{"documentType":"note","confidence":-1}`)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestDecodeAnalysisNormalizesType(t *testing.T) {
	res := decodeAnalysis(`{"documentType":" Receipt ","confidence":0.4}`)
	assert.Equal(t, "receipt", res.DocumentType)
}
