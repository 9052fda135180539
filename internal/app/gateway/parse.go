package gateway

import (
	"strings"

	"google.golang.org/genai"
)

// cleanJSONResponse strips markdown fences and surrounding prose from model
// output, leaving the outermost JSON object or array.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")
	start := objStart
	open, close := byte('{'), byte('}')
	if start == -1 || (arrStart != -1 && arrStart < start) {
		start = arrStart
		open, close = '[', ']'
	}
	if start == -1 {
		return response
	}

	// Find the matching closing delimiter by counting depth.
	depth := 0
	end := -1
	for i := start; i < len(response); i++ {
		switch response[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end != -1 {
			break
		}
	}
	if end == -1 {
		end = strings.LastIndexByte(response, close)
		if end <= start {
			return response
		}
	}

	return strings.TrimSpace(response[start : end+1])
}

// responseText flattens the first candidate's parts into a single string.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
		break
	}
	return strings.TrimSpace(sb.String())
}
