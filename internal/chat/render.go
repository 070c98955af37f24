package chat

// Speaker says who an entry belongs to.
type Speaker int

const (
	SpeakerBot Speaker = iota
	SpeakerUser
)

// Entry is one line of the conversation.
type Entry struct {
	Speaker Speaker
	Reply   Reply
}

// UserEntry wraps text typed by the user.
func UserEntry(text string) Entry {
	return Entry{Speaker: SpeakerUser, Reply: TextReply(text)}
}

// BotEntry wraps an assistant reply.
func BotEntry(r Reply) Entry {
	return Entry{Speaker: SpeakerBot, Reply: r}
}

// Renderer puts conversation entries on some display surface.
type Renderer interface {
	Render(Entry) error
}
