package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Message roles in the transcript the widget keeps.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is one user turn. History is the widget's transcript and is
// only forwarded to the completion API.
type ChatRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history,omitempty"`
}

func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Required, validation.Length(1, 2000)),
	)
}

// Reply sources
const (
	SourceKeyword = "keyword"
	SourceOpenAI  = "openai"
)

type ChatReply struct {
	Reply  string `json:"reply"`
	Topic  string `json:"topic,omitempty"`
	Source string `json:"source"`
}
