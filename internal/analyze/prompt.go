package analyze

import (
	"fmt"
	"strings"

	"github.com/essayflow/essayflow/internal/model"
)

// BuildPrompt assembles the counselor prompt for one essay and the chosen
// target schools. The response shape is negotiated in natural language;
// parsing stays defensive on our side.
func BuildPrompt(essay string, schools []model.School) string {
	schoolContext := "The student has not selected specific target schools yet."
	if len(schools) > 0 {
		var parts []string
		for _, s := range schools {
			parts = append(parts, fmt.Sprintf("%s (Vibe: %s)", s.Name, s.Vibe))
		}
		schoolContext = "The student is targeting: " + strings.Join(parts, ", ") + "."
	}

	jhuContext := ""
	for _, s := range schools {
		if s.ID == "jhu" {
			jhuContext = "IMPORTANT: The user is applying to Johns Hopkins. Include a specific feedback item with category 'Blue Jay Insider' that checks for 'Hopkins DNA' (interdisciplinary spirit, research, collaboration). Make this the first item."
			break
		}
	}

	var b strings.Builder
	b.WriteString("You are an expert college admissions counselor specializing in the Common App Personal Statement.\n\n")
	b.WriteString("Context:\n")
	b.WriteString("This is primarily a specific evaluation of the Common App Personal Statement.\n")
	fmt.Fprintf(&b, "While the student may have target schools (%s), remember that the Personal Statement is often sent to multiple universities.\n", schoolContext)
	b.WriteString("Do NOT penalize the essay for not mentioning specific university names unless it is explicitly a \"Why Us\" supplement.\n")
	b.WriteString("Focus your analysis on the narrative arc, personal voice, vulnerability, and introspection.\n")
	if jhuContext != "" {
		b.WriteString(jhuContext)
		b.WriteString("\n")
	}
	b.WriteString("\nEssay Text:\n")
	fmt.Fprintf(&b, "%q\n\n", essay)
	b.WriteString(`Please provide a detailed analysis in valid JSON format. Do not wrap the JSON in markdown code blocks. The JSON must exactly match this structure:
{
  "wordCount": number,
  "overallScore": number (0-100),
  "aiProbability": number (0-100, where 100 is definitely AI written),
  "readabilityGrade": "string (e.g. A-, B+)",
  "sentiment": "string (e.g. High, Neutral)",
  "uniquenessScore": "string (e.g. 8/10)",
  "summary": "Comprehensive 3-4 sentence summary of the essay's narrative strengths, weaknesses, and overall impression.",
  "feedback": [
    {
      "id": number,
      "category": "string (e.g. Narrative Arc, School Fit, Cliché Check, Blue Jay Insider, Tone Analysis, Hook Quality)",
      "score": number (0-100),
      "title": "Short punchy title",
      "summary": "One sentence summary of this specific feedback",
      "details": "Detailed explanation (3-4 sentences) explaining exactly why this feedback is given.",
      "quote": "The EXACT substring from the essay text that this feedback refers to. Copy it exactly from the input text including whitespace/punctuation. If general feedback, return null.",
      "action": "Specific, actionable advice on how to improve this section.",
      "rewriteSuggestion": "An improved rewrite of the quoted passage, or null if not applicable."
    }
  ]
}

REQUIREMENTS:
1. Provide at least 5-7 distinct feedback items.
2. If Johns Hopkins is selected, ensure the first item is 'Blue Jay Insider'.
3. Be critical but constructive.
4. Evaluate if the essay sounds like it was written by an AI (overly formal, generic structure, lack of personal voice).
5. IMPORTANT: Ensure all suggestions and "action" items sound like they are written by a helpful human mentor. Avoid AI clichés like "delve deeper," "showcase," "unleash," or overly flowery language. Use direct, practical 12th-grade level language.
`)

	return b.String()
}
