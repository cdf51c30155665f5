package bot

import (
	"github.com/KVidyashree/Chatbot/internal/index"
)

// SmallTalkEntry maps a courtesy phrase to its canned reply. Entries are
// checked in order, so more specific phrases should come first.
type SmallTalkEntry struct {
	Phrase string `yaml:"phrase"`
	Reply  string `yaml:"reply"`
}

// DefaultSmallTalk is the built-in phrase table. It can be replaced
// wholesale through the tunables file.
var DefaultSmallTalk = []SmallTalkEntry{
	{Phrase: "good morning", Reply: "Good morning! What would you like to know?"},
	{Phrase: "good afternoon", Reply: "Good afternoon! What would you like to know?"},
	{Phrase: "good evening", Reply: "Good evening! What would you like to know?"},
	{Phrase: "how are you", Reply: "I'm doing well, thanks for asking! What can I help you with?"},
	{Phrase: "thank you", Reply: "You're welcome! Feel free to ask me anything else."},
	{Phrase: "thanks", Reply: "You're welcome! Feel free to ask me anything else."},
	{Phrase: "hello", Reply: "Hello! Ask me a question and I'll do my best to answer."},
	{Phrase: "hey", Reply: "Hey there! Ask me a question and I'll do my best to answer."},
	{Phrase: "hi", Reply: "Hi! Ask me a question and I'll do my best to answer."},
	{Phrase: "goodbye", Reply: "Goodbye! Come back any time."},
	{Phrase: "bye", Reply: "Goodbye! Come back any time."},
}

// smallTalkReply returns the canned reply for a query that contains one of
// the table's phrases. Matching is done on whole tokens so short phrases
// like "hi" don't fire inside unrelated words.
func smallTalkReply(query string, table []SmallTalkEntry) (string, bool) {
	queryTokens := index.Tokenize(query)
	if len(queryTokens) == 0 {
		return "", false
	}
	for _, entry := range table {
		phraseTokens := index.Tokenize(entry.Phrase)
		if containsSequence(queryTokens, phraseTokens) {
			return entry.Reply, true
		}
	}
	return "", false
}

// containsSequence reports whether needle appears as a contiguous
// subsequence of haystack.
func containsSequence(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
