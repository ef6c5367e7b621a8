package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/realtime"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// MessageHandler handles direct messaging HTTP requests
type MessageHandler struct {
	conversationRepository repositories.ConversationRepository
	messageRepository      repositories.MessageRepository
	userRepository         repositories.UserRepository
	hub                    *realtime.Hub
	log                    *logrus.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	conversationRepo repositories.ConversationRepository,
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	hub *realtime.Hub,
	log *logrus.Logger,
) *MessageHandler {
	return &MessageHandler{
		conversationRepository: conversationRepo,
		messageRepository:      messageRepo,
		userRepository:         userRepo,
		hub:                    hub,
		log:                    log,
	}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/conversations", h.ListConversations)
	g.GET("/conversations/:id/messages", h.GetConversationMessages)
}

// SendMessage stores a direct message, creating the conversation on first
// contact, and pushes it to the receiver if connected. The conversation is
// identified by the unordered participant pair, so replies land in the same
// thread no matter who started it.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.ReceiverID == claims.UserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	}
	if _, err := h.userRepository.GetUserByID(req.ReceiverID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Receiver not found")
	}

	ctx := c.Request().Context()

	message := models.Message{
		SenderID: claims.UserID,
		Receiver: req.ReceiverID,
		Content:  req.Content,
	}
	if err := h.messageRepository.CreateMessage(ctx, &message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	conversation, err := h.conversationRepository.FindByParticipants(ctx, claims.UserID, req.ReceiverID)
	switch {
	case err == mongo.ErrNoDocuments:
		conversation, err = h.conversationRepository.CreateConversation(ctx, claims.UserID, req.ReceiverID, message.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	default:
		if err := h.conversationRepository.AppendMessage(ctx, conversation.ID, message.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	h.hub.Notify(req.ReceiverID, echo.Map{
		"type":            "message",
		"conversation_id": conversation.ID.Hex(),
		"message":         message,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"conversation_id": conversation.ID,
		"message":         message,
	})
}

// ListConversations lists the caller's conversations with the other
// participant and the latest message, optionally filtered by the other
// participant's name.
func (h *MessageHandler) ListConversations(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	keyword := strings.ToLower(c.QueryParam("keyword"))

	ctx := c.Request().Context()
	conversations, err := h.conversationRepository.ListByUser(ctx, claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		otherID := uint(0)
		for _, participant := range conversation.Participants {
			if participant != claims.UserID {
				otherID = participant
				break
			}
		}

		other, err := h.userRepository.GetUserByID(otherID)
		if err != nil {
			// other participant removed their account
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(other.Name), keyword) {
			continue
		}

		last, err := h.messageRepository.GetLatestByIDs(ctx, conversation.Messages)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		summaries = append(summaries, models.ConversationSummary{
			ConversationID: conversation.ID,
			Receiver:       other.ToAuthorSummary(),
			LastMessage:    last,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"conversations": summaries})
}

// GetConversationMessages pages a conversation's messages newest first.
// Only participants may read.
func (h *MessageHandler) GetConversationMessages(c echo.Context) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	page := int64(1)
	if p, err := strconv.ParseInt(c.QueryParam("page"), 10, 64); err == nil && p > 0 {
		page = p
	}
	limit := int64(models.MessagesPerPage)
	if l, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil && l > 0 {
		limit = l
	}

	ctx := c.Request().Context()
	conversation, err := h.conversationRepository.GetConversationByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
	}

	isParticipant := false
	for _, participant := range conversation.Participants {
		if participant == claims.UserID {
			isParticipant = true
			break
		}
	}
	if !isParticipant {
		return echo.NewHTTPError(http.StatusForbidden, "Not a participant of this conversation")
	}

	messages, total, err := h.messageRepository.GetMessagesByIDs(ctx, conversation.Messages, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalPages := int((total + limit - 1) / limit)
	return c.JSON(http.StatusOK, models.MessagePage{
		Messages:   messages,
		TotalPages: totalPages,
	})
}
