package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"brotech_admin/internal/assist"
	"brotech_admin/internal/messages"
	"brotech_admin/internal/model"
	"brotech_admin/internal/session"
	"brotech_admin/internal/store"
	"brotech_admin/pkg/email"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notifierSpy struct {
	sent chan email.NewMessageData
}

func (n *notifierSpy) SendNewMessageNotification(ctx context.Context, to string, data email.NewMessageData) error {
	n.sent <- data
	return nil
}

func (n *notifierSpy) SendPasswordChangedEmail(ctx context.Context, to string) error {
	return nil
}

func seedMessages(t *testing.T, env *testEnv, n int) []string {
	t.Helper()
	base := time.Now().UTC().Add(-time.Hour)
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, err := env.gw.Contacts.Create(context.Background(), &model.ContactMessage{
			Name:      fmt.Sprintf("Sender %02d", i),
			Email:     fmt.Sprintf("s%d@example.com", i),
			Subject:   "Quote",
			Message:   fmt.Sprintf("message body %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestSubmitContact(t *testing.T) {
	spy := &notifierSpy{sent: make(chan email.NewMessageData, 1)}
	env := newTestEnv(t, func(d *Dependencies) {
		d.Mailer = spy
		d.NotifyTo = testEmail
	})

	resp, body := env.do(t, http.MethodPost, "/api/contacts", "", map[string]string{
		"name":    "Jane",
		"email":   "jane@example.com",
		"subject": "Website",
		"message": "Can you build us a site?",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	id := decode[map[string]string](t, body)["id"]
	require.NotEmpty(t, id)

	select {
	case data := <-spy.sent:
		assert.Equal(t, "Jane", data.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not sent")
	}

	resp, body = env.do(t, http.MethodGet, "/api/messages/"+id, env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Can you build us a site?", decode[model.ContactMessage](t, body).Message)
}

func TestSubmitContact_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/contacts", "", map[string]string{
		"name":    "Jane",
		"email":   "not-an-email",
		"message": "hello",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email", decode[map[string]string](t, body)["field"])

	ctx := session.WithIdentity(context.Background(), &session.Identity{UserID: "u1", Email: testEmail})
	n, err := env.gw.Contacts.Count(ctx, store.NewQuery())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListMessages_SearchSortPage(t *testing.T) {
	env := newTestEnv(t)
	seedMessages(t, env, 12)

	resp, body := env.do(t, http.MethodGet, "/api/messages", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	out := decode[struct {
		Sort string        `json:"sort"`
		Page messages.Page `json:"page"`
	}](t, body)
	assert.Equal(t, "desc", out.Sort)
	assert.Equal(t, 12, out.Page.Total)
	assert.Equal(t, 2, out.Page.TotalPages)
	require.Len(t, out.Page.Items, messages.PageSize)
	assert.Equal(t, "Sender 11", out.Page.Items[0].Name)

	resp, body = env.do(t, http.MethodGet, "/api/messages?sort=asc&page=2", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out = decode[struct {
		Sort string        `json:"sort"`
		Page messages.Page `json:"page"`
	}](t, body)
	assert.Equal(t, 2, out.Page.Page)
	require.Len(t, out.Page.Items, 2)
	assert.Equal(t, "Sender 10", out.Page.Items[0].Name)

	// sayfa sınırın dışındaysa son sayfaya çekilir
	resp, body = env.do(t, http.MethodGet, "/api/messages?search=BODY%205&page=9", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out = decode[struct {
		Sort string        `json:"sort"`
		Page messages.Page `json:"page"`
	}](t, body)
	assert.Equal(t, 1, out.Page.Page)
	require.Len(t, out.Page.Items, 1)
	assert.Equal(t, "Sender 05", out.Page.Items[0].Name)
}

func TestExportMessages(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/messages/export", env.token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No messages to export.", decode[map[string]string](t, body)["error"])

	seedMessages(t, env, 3)
	resp, body = env.do(t, http.MethodGet, "/api/messages/export?sort=asc&search=sender", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "messages_export_")

	lines := strings.Split(string(body), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID,Name,Email,Subject,Message,Date Received", lines[0])
	assert.Contains(t, lines[1], `"Sender 00"`)
	assert.Contains(t, lines[3], `"Sender 02"`)
}

func TestDeleteMessage(t *testing.T) {
	env := newTestEnv(t)
	ids := seedMessages(t, env, 2)

	resp, _ := env.do(t, http.MethodDelete, "/api/messages/"+ids[0], env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := env.do(t, http.MethodGet, "/api/messages/"+ids[0], env.token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "message not found", decode[map[string]string](t, body)["error"])

	resp, _ = env.do(t, http.MethodDelete, "/api/messages/"+ids[0], env.token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSummarize_NotConfigured(t *testing.T) {
	env := newTestEnv(t)
	ids := seedMessages(t, env, 1)

	resp, body := env.do(t, http.MethodPost, "/api/messages/"+ids[0]+"/summary", env.token, nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, assist.ErrNotConfigured.Error(), decode[map[string]string](t, body)["error"])
}

func TestSummarizeAndDraftReply(t *testing.T) {
	var prompts []string
	fail := false
	env := newTestEnv(t, func(d *Dependencies) {
		d.Assistant = assist.New(generatorFunc(func(ctx context.Context, prompt string) (string, error) {
			if fail {
				return "", errors.New("quota exceeded")
			}
			prompts = append(prompts, prompt)
			return "  generated text \n", nil
		}))
	})
	ids := seedMessages(t, env, 1)

	resp, body := env.do(t, http.MethodPost, "/api/messages/"+ids[0]+"/summary", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "generated text", decode[map[string]string](t, body)["summary"])

	resp, body = env.do(t, http.MethodPost, "/api/messages/"+ids[0]+"/draft-reply", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "generated text", decode[map[string]string](t, body)["reply"])

	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[0], "message body 0")

	fail = true
	resp, body = env.do(t, http.MethodPost, "/api/messages/"+ids[0]+"/draft-reply", env.token, nil)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Could not draft reply. Please try again.", decode[map[string]string](t, body)["error"])

	resp, _ = env.do(t, http.MethodPost, "/api/messages/missing/summary", env.token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
