package chat

import "strings"

// completionKeywords are the phrases the assistant uses when it has actually
// changed an appointment on the backend. Substring matching on natural
// language is a heuristic and can misfire; the assistant service does not
// emit a structured signal yet.
var completionKeywords = []string{
	"booked",
	"canceled",
}

// ShouldReload reports whether an assistant reply indicates the appointment
// list changed. The caller triggers exactly one reload per matching reply,
// however many keywords occur.
func ShouldReload(reply string) bool {
	reply = strings.ToLower(reply)
	for _, keyword := range completionKeywords {
		if strings.Contains(reply, keyword) {
			return true
		}
	}
	return false
}
