package vision

import "fmt"

// classifyPrompt instructs the model to answer with a single JSON object.
// The decode layer still treats the answer as untrusted.
const classifyPrompt = `You are a document scanner assistant. Look at the image and respond with a single JSON object, no prose, using this shape:
{
  "documentType": one of "receipt", "invoice", "id_card", "passport", "contract", "letter", "form", "report", "business_card", "note", "unknown",
  "confidence": number between 0 and 1,
  "language": {"code": ISO 639-1 code, "name": language name, "confidence": number},
  "data": object mapping field names to extracted string values,
  "rawText": the full text visible in the document,
  "tags": array of short keywords,
  "warnings": array of strings describing anything unclear
}`

func buildPrompt(langHint string) string {
	if langHint == "" {
		return classifyPrompt
	}
	return fmt.Sprintf("%s\nRespond with field values in language %q when translating is needed.", classifyPrompt, langHint)
}
