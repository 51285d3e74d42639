package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTopics_Empty(t *testing.T) {
	assert.Empty(t, ExtractTopics(nil))
	assert.Empty(t, ExtractTopics([]string{}))
	assert.Empty(t, ExtractTopics([]string{"", "  "}))
}

func TestExtractTopics_SingleRepeatedWord(t *testing.T) {
	topics := ExtractTopics([]string{"entrega entrega", "entrega"})
	assert.Equal(t, []string{"entrega"}, topics)
}

func TestExtractTopics_ShortWordsDiscarded(t *testing.T) {
	topics := ExtractTopics([]string{"app bom da web soma suporte"})
	assert.NotContains(t, topics, "app")
	assert.NotContains(t, topics, "bom")
	assert.Contains(t, topics, "soma")
	assert.Contains(t, topics, "suporte")
}

func TestExtractTopics_FrequencyOrder(t *testing.T) {
	topics := ExtractTopics([]string{
		"entrega rapida",
		"entrega atrasada",
		"entrega perfeita rapida",
	})
	assert.Equal(t, "entrega", topics[0])
	assert.Equal(t, "rapida", topics[1])
}

func TestExtractTopics_TiesKeepFirstSeenOrder(t *testing.T) {
	topics := ExtractTopics([]string{"zebra alface banana", "zebra alface banana"})
	assert.Equal(t, []string{"zebra", "alface", "banana"}, topics)
}

func TestExtractTopics_PunctuationStripped(t *testing.T) {
	topics := ExtractTopics([]string{"entrega!!! atrasada, (entrega)"})
	assert.Contains(t, topics, "entrega")
	assert.Contains(t, topics, "atrasada")
}

func TestExtractTopics_CapsAtTen(t *testing.T) {
	texts := []string{
		"alpha bravo charlie delta echo foxtrot hotel india juliett kilo lima mike november",
	}
	topics := ExtractTopics(texts)
	assert.Len(t, topics, 10)
	// Equal frequencies, so the first ten seen survive
	assert.Equal(t, "alpha", topics[0])
	assert.Equal(t, "kilo", topics[9])
}
