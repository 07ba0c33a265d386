package llm

// BuildRecordsJSONSchema returns the JSON Schema for the model output: an
// array of {key, value, comments} objects, all three required strings.
// Providers pass it as the structured-output constraint and it is also used
// locally to validate the response.
func BuildRecordsJSONSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"key": map[string]any{
					"type":        "string",
					"description": "The field name, e.g., 'First Name', 'Employer Name'",
				},
				"value": map[string]any{
					"type":        "string",
					"description": "The extracted value, e.g., 'Vijay', 'Google Inc.'",
				},
				"comments": map[string]any{
					"type":        "string",
					"description": "The exact original contextual sentence(s) from the document related to the key-value pair.",
				},
			},
			"required": []string{"key", "value", "comments"},
		},
	}
}

// recordFields lists the properties of one record object.
var recordFields = []string{"key", "value", "comments"}
