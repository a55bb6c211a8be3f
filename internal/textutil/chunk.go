package textutil

import "strings"

// sentence-terminal characters used for boundary detection.
const sentenceEnds = ".!?"

// Split cuts text into chunks of at most maxSize characters with overlap
// characters shared between consecutive chunks. Each window prefers to end
// just after a sentence-terminal character when one falls within the last
// half of the window. Overlap is clamped into [0, maxSize) — an overlap of
// maxSize or more would keep the cursor from advancing and never terminate.
func Split(text string, maxSize, overlap int) []string {
	if maxSize <= 0 {
		maxSize = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxSize {
		overlap = maxSize - 1
	}

	if len(text) <= maxSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + maxSize
		if end >= len(text) {
			end = len(text)
		} else {
			// Walk backwards through the last half of the window looking
			// for a sentence boundary to end on.
			half := start + maxSize/2
			for i := end - 1; i > half; i-- {
				if strings.ContainsRune(sentenceEnds, rune(text[i])) {
					end = i + 1
					break
				}
			}
		}

		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(text) {
			break
		}
		next := end - overlap
		if next <= start {
			// A shortened sentence window combined with a large overlap can
			// stop the cursor from advancing; drop the overlap for this step.
			next = end
		}
		start = next
	}

	return chunks
}
