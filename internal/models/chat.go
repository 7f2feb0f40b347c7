package models

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type SupportLevel string

const (
	SupportNormal  SupportLevel = "normal"
	SupportConcern SupportLevel = "concern"
)

type ChatState string

const (
	ChatIdle             ChatState = "idle"
	ChatAwaitingResponse ChatState = "awaiting-response"
	ChatLimitReached     ChatState = "limit-reached"
)

type ChatMessage struct {
	ID           string       `json:"id"`
	Text         string       `json:"text"`
	Sender       Sender       `json:"sender"`
	Timestamp    time.Time    `json:"timestamp"`
	SupportLevel SupportLevel `json:"supportLevel,omitempty"`
	Disclaimer   string       `json:"disclaimer,omitempty"`
}

// ChatSessionView is a snapshot of a conversation.
type ChatSessionView struct {
	ID           string        `json:"id"`
	State        ChatState     `json:"state"`
	MessageCount int           `json:"messageCount"`
	MaxMessages  int           `json:"maxMessages"`
	Messages     []ChatMessage `json:"messages"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// ChatTurn is one entry of the history sent to the model.
type ChatTurn struct {
	Role string // "user" | "model"
	Text string
}

// SendResult is returned for every accepted message. Notice is set when the
// model call failed and a fallback reply was used.
type SendResult struct {
	UserMessage ChatMessage `json:"userMessage"`
	BotMessage  ChatMessage `json:"botMessage"`
	State       ChatState   `json:"state"`
	Remaining   int         `json:"remaining"`
	Notice      string      `json:"notice,omitempty"`
}
