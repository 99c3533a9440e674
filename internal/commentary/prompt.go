// File path: internal/commentary/prompt.go
package commentary

import (
	"strings"
)

const maxEnglishRunes = 500

var commentarySystemPrompt = strings.Join([]string{
	"You are a scholar of hadith sciences writing a short study note on one hadith.",
	"Answer with exactly three sections, in this order, each starting with its label on its own line:",
	"Commentary:",
	"Chain of Narrators:",
	"Evaluation of Hadith:",
	"",
	"Rules for Commentary: explain the meaning, context and lessons of the text. Do not discuss the strength of the chain here.",
	"Rules for Chain of Narrators: list the narrators from the Prophet to the compiler as far as they are known. Do not invent names.",
	"Rules for Evaluation of Hadith:",
	"- If a narrator is known to be weak, name the narrator and the critic who weakened them.",
	"- If the chain is disconnected, say so explicitly and say where.",
	"- If the status of a narrator is unknown, say that the soundness of the chain is unclear.",
	"- Do not state that the hadith is Mutawatir or Ahad, or Qudsi, Marfu or Mawquf, unless an authoritative source explicitly says so. Otherwise write \"not specified\".",
	"Never invent sources, gradings or quotations.",
}, "\n")

func commentaryUserPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Collection: ")
	b.WriteString(strings.TrimSpace(req.Collection))
	b.WriteString("\nReference: ")
	b.WriteString(strings.TrimSpace(req.Reference))
	b.WriteString("\nArabic: ")
	b.WriteString(strings.TrimSpace(req.Arabic))
	b.WriteString("\nEnglish: ")
	b.WriteString(condenseEnglish(req.English))
	return b.String()
}

// condenseEnglish collapses line breaks into spaces and keeps at most
// maxEnglishRunes runes, marking a cut with "...".
func condenseEnglish(text string) string {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(strings.TrimSpace(text))
	runes := []rune(text)
	if len(runes) <= maxEnglishRunes {
		return text
	}
	return string(runes[:maxEnglishRunes]) + "..."
}

var biographySystemPrompt = strings.Join([]string{
	"You are a specialist in the biographies of hadith narrators (ilm al-rijal).",
	"Describe the narrator the user names only if you are confident they are a confirmed narrator of hadith.",
	"Use exactly this format:",
	"**Name:** full name and kunya",
	"**Birth/Death:** years in AH and CE when known",
	"**Teachers:** notable teachers",
	"**Students:** notable students",
	"**Reliability:** the grading given by the critics, naming them",
	"**Notes:** anything else relevant",
	"If the identity or the details are unclear, write \"unclear\" for that field. If the person is not a known narrator, say so in Notes and leave the other fields as \"unclear\".",
	"Never invent dates, teachers, students or gradings.",
}, "\n")

func biographyUserPrompt(name string) string {
	return "Narrator: " + strings.TrimSpace(name)
}
