package openai

const languagePromptTemplate = `Identify the primary language of each document in the JSON list below.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this shape:

{"results": [{"id": "<document id>", "language": "<ISO 639-1 code>"}]}

Rules:
- Return exactly one result per input document, with the same "id".
- "language" must be a two-letter ISO 639-1 code, lowercase ("en", "uk", "de").
- If the language cannot be determined, use "und".
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Documents:
%s`

const sentimentPromptTemplate = `Classify the sentiment of each document in the JSON list below. Each document
may carry a "language" hint.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this shape:

{"results": [{"id": "<document id>", "sentiment": "positive|neutral|negative", "positive": 0.0, "neutral": 0.0, "negative": 0.0}]}

Rules:
- Return exactly one result per input document, with the same "id".
- "sentiment" must be exactly one of: positive, neutral, negative.
- "positive", "neutral", "negative" are confidence scores in [0, 1] that sum to 1.0.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Documents:
%s`

const keyPhrasePromptTemplate = `Extract the key phrases of each document in the JSON list below. Each
document may carry a "language" hint; phrases stay in the document's language.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this shape:

{"results": [{"id": "<document id>", "key_phrases": ["<phrase>"]}]}

Rules:
- Return exactly one result per input document, with the same "id".
- Key phrases are short noun phrases taken from the document, at most 5 per document.
- If a document has no notable phrases, return "key_phrases": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Documents:
%s`
