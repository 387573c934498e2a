package response

import "github.com/gofiber/fiber/v3"

// SemanticResponse is the envelope every JSON endpoint answers with.
type SemanticResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Generic messages, used when a handler passes none.
const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
	MessageDegraded            = "degraded"
)

// Founder-match messages.
const (
	MessageRegistered         = "User registered successfully"
	MessageLoggedIn           = "User logged in successfully"
	MessageTokenRefreshed     = "Token refreshed"
	MessageProfileSaved       = "Profile saved"
	MessageSkillCreated       = "Skill created successfully"
	MessageMatchesGenerated   = "Matches generated"
	MessageMatchUpdated       = "Match updated"
	MessageMessagesRetrieved  = "Messages retrieved"
	MessageMessageSent        = "Message sent"
	MessageMessagesRead       = "Messages marked as read"
	MessageAnalyticsRetrieved = "Analytics retrieved"
)

var statusMessages = map[int]string{
	fiber.StatusOK:                  MessageOK,
	fiber.StatusCreated:             MessageOK,
	fiber.StatusBadRequest:          MessageBadRequest,
	fiber.StatusUnauthorized:        MessageUnauthorized,
	fiber.StatusForbidden:           MessageForbidden,
	fiber.StatusNotFound:            MessageNotFound,
	fiber.StatusConflict:            MessageConflict,
	fiber.StatusUnprocessableEntity: MessageUnprocessableEntity,
	fiber.StatusServiceUnavailable:  MessageDegraded,
}

func Success(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

// Error writes the same envelope; data carries field errors when there are any.
func Error(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data any) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = MessageFor(status)
	}
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

// MessageFor is the fallback message of a status code.
func MessageFor(status int) string {
	if m, ok := statusMessages[status]; ok {
		return m
	}
	if status >= 500 {
		return MessageInternalServerError
	}
	if status >= 200 && status < 300 {
		return MessageOK
	}
	return MessageError
}
