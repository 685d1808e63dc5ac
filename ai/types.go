package ai

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a chat completion request.
type Message struct {
	Role    Role
	Content string
}

// SystemMessage is shorthand for a Message with RoleSystem.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage is shorthand for a Message with RoleUser.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage is shorthand for a Message with RoleAssistant.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
