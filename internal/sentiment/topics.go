package sentiment

import (
	"regexp"
	"sort"
	"strings"
)

// maxTopics caps the topic list returned to callers
const maxTopics = 10

// ASCII word characters only, matching the original product behavior:
// accented letters are stripped along with punctuation.
var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// ExtractTopics frequency-ranks words across a batch of texts and
// returns the top 10. Tokens of length <= 3 are discarded; that short-word
// filter is the only noise reduction, there is no stopword list. Ties keep
// first-seen order.
func ExtractTopics(texts []string) []string {
	counts := make(map[string]int)
	var order []string

	for _, text := range texts {
		cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), "")
		for _, word := range strings.Fields(cleaned) {
			if len(word) <= 3 {
				continue
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxTopics {
		order = order[:maxTopics]
	}
	return order
}
