package markdown

import "strings"

// DefaultWordsPerMinute is the reading speed used when none is configured.
const DefaultWordsPerMinute = 200

// WordCount splits the body on whitespace runs.
func WordCount(body []byte) int {
	return len(strings.Fields(string(body)))
}

// ReadingTime converts a word count into whole minutes, rounding up. Any
// non-empty body takes at least one minute.
func ReadingTime(words, wordsPerMinute int) int {
	if words <= 0 {
		return 0
	}
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
