package llm

const promptHead = `You are a data extraction expert. Extract ALL information from the following document into a structured key-value format.

DOCUMENT TEXT:
`

const promptTail = `

INSTRUCTIONS:
1. Extract **EVERY** piece of information - nothing should be omitted.
2. Create logical key-value pairs (e.g., "First Name" : "Vijay").
3. For each key-value pair, add relevant **CONTEXT** from the document in a "comments" field.
4. Context should be the **EXACT** original sentences from the document that provide additional information.
5. Preserve original wording - do not paraphrase.
6. Format dates as DD-MMM-YY (e.g., 15-Mar-89).
7. The output **MUST** be a JSON array that strictly adheres to the provided schema. Do not add any extra text or markdown wrappers like ` + "```json" + `.

Extract ALL information systematically covering:
- Personal details (name, DOB, age, blood group, nationality)
- Professional history (all jobs, dates, salaries, designations)
- Education (schools, colleges, degrees, scores, years)
- Certifications (names, scores, years)
- Technical skills`

// BuildPrompt embeds the document text verbatim in the fixed extraction instructions.
func BuildPrompt(text string) string {
	return promptHead + text + promptTail
}
