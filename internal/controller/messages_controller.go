package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brotech_admin/internal/assist"
	"brotech_admin/internal/messages"
	"brotech_admin/internal/model"
	"brotech_admin/internal/store"
	"brotech_admin/pkg/email"
	"brotech_admin/pkg/utils/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (in ContactInput) validate() error {
	return validation.Each(
		validation.Required("name", in.Name),
		validation.Email("email", in.Email),
		validation.Required("message", in.Message),
	)
}

type ContactNotifier interface {
	SendNewMessageNotification(ctx context.Context, to string, data email.NewMessageData) error
}

type MessagesHandler struct {
	Contacts  *store.Contacts
	Assistant *assist.Assistant
	Notifier  ContactNotifier
	NotifyTo  string
}

// InitRestMessages registers the operator routes; SubmitContact is mounted with the public ones.
func InitRestMessages(protected fiber.Router, handler MessagesHandler) MessagesHandler {
	protected.Get("/messages", handler.List)
	protected.Get("/messages/export", handler.Export)
	protected.Get("/messages/:id", handler.Get)
	protected.Delete("/messages/:id", handler.Delete)
	protected.Post("/messages/:id/summary", handler.Summarize)
	protected.Post("/messages/:id/draft-reply", handler.DraftReply)

	return handler
}

// SubmitContact web sitesindeki iletişim formu
func (h *MessagesHandler) SubmitContact(c *fiber.Ctx) error {
	input := new(ContactInput)
	if err := c.BodyParser(input); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := input.validate(); err != nil {
		return respondError(c, err)
	}

	msg := model.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: input.Message,
	}
	id, err := h.Contacts.Create(c.UserContext(), &msg)
	if err != nil {
		return respondError(c, err)
	}

	h.notify(msg)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"message": "Your message has been sent successfully. We will get back to you soon.",
	})
}

// Bildirim e-postası isteği bekletmez
func (h *MessagesHandler) notify(msg model.ContactMessage) {
	if h.Notifier == nil || h.NotifyTo == "" {
		return
	}
	data := email.NewMessageData{
		Name:       msg.Name,
		Email:      msg.Email,
		Subject:    msg.Subject,
		Message:    msg.Message,
		ReceivedAt: msg.CreatedAt,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.Notifier.SendNewMessageNotification(ctx, h.NotifyTo, data); err != nil {
			zap.L().Warn("Could not send new message notification", zap.Error(err))
		}
	}()
}

// loadView fetches a snapshot and applies the list query parameters.
func (h *MessagesHandler) loadView(c *fiber.Ctx) (*messages.View, error) {
	view := messages.NewView()
	err := view.Load(c.UserContext(), func(ctx context.Context) ([]model.ContactMessage, error) {
		return h.Contacts.List(ctx, store.NewQuery().OrderBy("createdAt", true))
	})
	if err != nil {
		return nil, err
	}
	view.SetQuery(c.Query("search"))
	view.SetOrder(messages.ParseSortOrder(c.Query("sort")))
	return view, nil
}

func (h *MessagesHandler) List(c *fiber.Ctx) error {
	view, err := h.loadView(c)
	if err != nil {
		return respondError(c, err)
	}
	view.GoTo(c.QueryInt("page", 1))

	return c.JSON(fiber.Map{
		"search": c.Query("search"),
		"sort":   messages.ParseSortOrder(c.Query("sort")),
		"page":   view.Current(),
	})
}

// Export sends the filtered and sorted messages of every page as CSV.
func (h *MessagesHandler) Export(c *fiber.Ctx) error {
	view, err := h.loadView(c)
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := messages.WriteCSV(&buf, view.Visible()); err != nil {
		if errors.Is(err, messages.ErrNothingToExport) {
			return badRequest(c, "No messages to export.")
		}
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, messages.ExportFilename(time.Now())))
	return c.Send(buf.Bytes())
}

func (h *MessagesHandler) Get(c *fiber.Ctx) error {
	msg, err := h.Contacts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msg)
}

func (h *MessagesHandler) Delete(c *fiber.Ctx) error {
	if err := h.Contacts.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Message deleted successfully",
	})
}

func (h *MessagesHandler) Summarize(c *fiber.Ctx) error {
	return h.generate(c, "summary", h.Assistant.Summarize)
}

func (h *MessagesHandler) DraftReply(c *fiber.Ctx) error {
	return h.generate(c, "reply", h.Assistant.DraftReply)
}

func (h *MessagesHandler) generate(c *fiber.Ctx, key string, fn func(ctx context.Context, text string) (string, error)) error {
	if !h.Assistant.Configured() {
		return respondError(c, assist.ErrNotConfigured)
	}

	msg, err := h.Contacts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	text, err := fn(c.UserContext(), msg.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		key: text,
	})
}
