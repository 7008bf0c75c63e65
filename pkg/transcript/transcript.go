package transcript

// Role is the role for a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// SurrogateMarker prefixes every locally generated failure message.
const SurrogateMarker = "⚠️ Error talking to the model:"

// Message is one role-tagged entry of a conversation. Messages are values;
// a copy handed out by Snapshot can never change the transcript.
type Message struct {
	Role    Role
	Content string
	// Surrogate marks an assistant-role message produced locally in place of a
	// model reply. It is shown to the user but never sent back to the model.
	Surrogate bool
}

// IsSurrogate reports whether m is a local failure message rather than
// genuine model output.
func (m Message) IsSurrogate() bool {
	return m.Surrogate
}

// Transcript is the ordered message history of one session. It is not safe for
// concurrent use; the owning session serializes access.
type Transcript struct {
	messages []Message
}

// New returns an empty, unseeded transcript.
func New() *Transcript {
	return &Transcript{}
}

// Append adds one message to the end. Alternation is not validated.
func (t *Transcript) Append(role Role, content string) {
	t.messages = append(t.messages, Message{Role: role, Content: content})
}

// AppendSurrogate adds an assistant-role failure message.
func (t *Transcript) AppendSurrogate(content string) {
	t.messages = append(t.messages, Message{Role: RoleAssistant, Content: content, Surrogate: true})
}

// ResetAndSeed discards all messages and starts over with a single system
// message.
func (t *Transcript) ResetAndSeed(systemPrompt string) {
	t.messages = []Message{{Role: RoleSystem, Content: systemPrompt}}
}

// Seeded reports whether the transcript starts with a system message.
func (t *Transcript) Seeded() bool {
	return len(t.messages) > 0 && t.messages[0].Role == RoleSystem
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Snapshot returns a copy of the messages in chronological order.
func (t *Transcript) Snapshot() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Exchange returns the messages that make up the model-facing conversation:
// everything except surrogates.
func (t *Transcript) Exchange() []Message {
	out := make([]Message, 0, len(t.messages))
	for _, m := range t.messages {
		if m.IsSurrogate() {
			continue
		}
		out = append(out, m)
	}
	return out
}
