package models

const (
	// NoContextMarker is emitted verbatim in place of an empty context
	// block so the model never invents context of its own.
	NoContextMarker = "(No relevant context available)"

	// DegradedReply is the single user-facing reply for any generation
	// failure. Causes are logged server-side only.
	DegradedReply = "⚠️ Cortex backend error. Ensure Ollama is running."

	// UnsupportedFormatText is returned as extracted "text" for unknown
	// file extensions. Uploads never fail on format.
	UnsupportedFormatText = "[UNSUPPORTED FORMAT] This file type cannot be read."
)

var (
	DocumentPreamble = `You are Cortex, a premium AI assistant.

RULES:
- Use ONLY the provided document context
- If context is insufficient, say so clearly
- Do NOT hallucinate
- Do NOT mention internal systems, embeddings, or files`

	ImagePreamble = `You are Cortex, a premium AI assistant.

RULES:
- Use ONLY the provided OCR text from the image
- If the OCR text is unclear or insufficient, say so
- Do NOT assume visual details not present in the text
- Do NOT hallucinate
- Do NOT mention internal systems, OCR, or files`

	ChatPreamble = `You are Cortex, a premium AI assistant.

RULES:
- Answer naturally and helpfully
- Do NOT mention internal systems or implementation details`

	// OCRInstruction is the transcription request sent alongside image
	// bytes to the vision model.
	OCRInstruction = "Transcribe every piece of text visible in this image. " +
		"Return only the transcribed text, with no commentary. " +
		"If the image contains no readable text, return an empty response."
)
