package dto

// StartChatInput opens (or reuses) a thread about a post.
type StartChatInput struct {
	PostID string `json:"post_id" binding:"required,uuid"`
}

// SendMessageInput is a chat message body; it is trimmed before storing.
type SendMessageInput struct {
	Body string `json:"body" binding:"required"`
}
