package prompt

import (
	"fmt"
	"strings"

	"github.com/suPer8Hu/krishi-mitra/internal/language"
)

type DiseaseRequest struct {
	Diseases   []string
	ImageCount int
	// Question is the farmer's own text sent with the photos; may be empty.
	Question string
	Language string
}

// Disease builds the follow-up prompt for diseases detected in uploaded
// crop photos.
func Disease(req DiseaseRequest) PreComposed {
	lang := language.Resolve(req.Language)
	label := language.Label(lang)
	names := strings.Join(req.Diseases, ", ")
	if names == "" {
		names = "no disease identified"
	}
	images := req.ImageCount
	if images <= 0 {
		images = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CRITICAL: Respond ONLY in %s.\n\n", label)
	b.WriteString("You are an expert plant pathologist helping an Indian farmer.\n")
	fmt.Fprintf(&b, "The farmer uploaded %d crop image(s). Detected: %s.\n\n", images, names)

	if q := strings.TrimSpace(req.Question); q != "" {
		fmt.Fprintf(&b, "Farmer's question: %s\n\n", q)
		b.WriteString(`Answer the question directly first, then cover:
1. What the disease is and how it spreads.
2. Immediate steps to take today.
3. Organic treatment with doses.
4. Chemical treatment with product, dose per litre and cost in ₹.
5. Prevention for the next season.
`)
	} else {
		b.WriteString(`Give a concise answer:
1. Disease name and main symptoms.
2. Treatment: one organic and one chemical option with doses.
3. Two prevention tips.
`)
	}
	fmt.Fprintf(&b, "\nREMEMBER: Respond ONLY in %s.", label)
	return PreComposed{Text: b.String()}
}
