package gateway

import (
	"fmt"
	"strings"
)

func geocodePrompt(query string) string {
	return fmt.Sprintf(`You are a geocoding assistant. Resolve the place query %q.
Respond with JSON only.
If the query resolves to exactly one well-known place:
{"name": "<canonical place name>", "lat": <latitude>, "lng": <longitude>}
If the query is ambiguous or likely misspelled, list up to 4 candidates:
{"alternatives": ["<name>", ...]}
If no real place matches, respond with: {}`, query)
}

func reverseGeocodePrompt(lat, lng float64) string {
	return fmt.Sprintf(`Name the most specific well-known place at latitude %.5f, longitude %.5f.
Respond with JSON only: {"name": "<place name>", "lat": %.5f, "lng": %.5f}`, lat, lng, lat, lng)
}

func summaryPrompt(name string) string {
	return fmt.Sprintf(`Write a vivid two-paragraph traveler's introduction to %s.
Mention what the place is known for and one thing that surprises first-time
visitors. Plain prose, no markdown headings.`, name)
}

func visualKeywordsPrompt(name string, exclude []string, limit int) string {
	prompt := fmt.Sprintf(`Suggest up to %d photogenic landmarks or scenes in or around %s.
Respond with a JSON array only:
[{"short_caption": "<2-4 words>", "rich_caption": "<one sentence>", "image_url": "<representative image URL>", "source_uri": "<page the image comes from, optional>"}]`, limit, name)
	if len(exclude) > 0 {
		prompt += fmt.Sprintf("\nDo not repeat any of: %s.", strings.Join(exclude, ", "))
	}
	return prompt
}

func questionsPrompt(name string, count int) string {
	return fmt.Sprintf(`Write %d short, curiosity-sparking questions a traveler might ask about %s.
Each under 10 words. Respond with a JSON array of strings only.`, count, name)
}

func singleQuestionPrompt(name string, exclude []string) string {
	prompt := fmt.Sprintf(`Write one short, curiosity-sparking question a traveler might ask about %s.
Under 10 words. Respond with JSON only: {"question": "<question>"}`, name)
	if len(exclude) > 0 {
		prompt += fmt.Sprintf("\nIt must differ from all of: %s", strings.Join(exclude, " | "))
	}
	return prompt
}

func coolLocationPrompt(exclude []string) string {
	prompt := `Pick one fascinating, lesser-known place on Earth worth exploring on a map.
Respond with JSON only: {"name": "<place name>", "lat": <latitude>, "lng": <longitude>}`
	if len(exclude) > 0 {
		prompt += fmt.Sprintf("\nDo not pick any of: %s.", strings.Join(exclude, ", "))
	}
	return prompt
}

func freeFormPrompt(question string, focalDesc string) string {
	var sb strings.Builder
	sb.WriteString("You are a knowledgeable travel guide answering questions about places on a map.\n")
	if focalDesc != "" {
		sb.WriteString(focalDesc)
		sb.WriteString("\n")
	}
	sb.WriteString("Answer the question in engaging prose. If specific places are central to\n")
	sb.WriteString("the answer, finish with a line starting with LOCATIONS: followed by a JSON\n")
	sb.WriteString("array [{\"name\": ..., \"lat\": ..., \"lng\": ...}] of up to 5 of them.\n\n")
	sb.WriteString("Question: ")
	sb.WriteString(question)
	return sb.String()
}
