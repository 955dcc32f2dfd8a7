package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"leadbot/internal/booking"
	"leadbot/internal/storage/memory"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// telegramServer imitates the Bot API methods the lifecycle calls
type telegramServer struct {
	mu      sync.Mutex
	calls   map[string]int
	forms   map[string]url.Values
	pending []tgbotapi.Update
}

func newTelegramServer(updates ...tgbotapi.Update) *telegramServer {
	return &telegramServer{
		calls:   make(map[string]int),
		forms:   make(map[string]url.Values),
		pending: updates,
	}
}

func (s *telegramServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := path.Base(r.URL.Path)
	_ = r.ParseForm()

	s.mu.Lock()
	s.calls[method]++
	s.forms[method] = r.PostForm
	var updates []tgbotapi.Update
	if method == "getUpdates" {
		updates = s.pending
		s.pending = nil
	}
	s.mu.Unlock()

	var result interface{}
	switch method {
	case "getMe":
		result = tgbotapi.User{ID: 1, IsBot: true, FirstName: "Lead", UserName: "lead_bot"}
	case "getUpdates":
		if len(updates) == 0 {
			// keep the poll loop from spinning
			time.Sleep(10 * time.Millisecond)
			updates = []tgbotapi.Update{}
		}
		result = updates
	case "sendMessage":
		result = tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: chatID}}
	case "getWebhookInfo":
		result = tgbotapi.WebhookInfo{URL: "https://bot.example.com" + WebhookPath}
	default:
		result = true
	}

	raw, _ := json.Marshal(result)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": json.RawMessage(raw)})
}

func (s *telegramServer) count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *telegramServer) form(method string) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forms[method]
}

// setupLiveBot builds a Bot whose client talks to a local Bot API server
func setupLiveBot(t *testing.T, updates ...tgbotapi.Update) (*Bot, *telegramServer) {
	t.Helper()
	stub := newTelegramServer(updates...)
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithClient("test-token", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	machine := booking.NewMachine(memory.New(), &countingNotifier{}, zap.NewNop())
	return NewBot(api, machine, Options{}, zap.NewNop()), stub
}

func TestBot_StartPollsUntilCancelled(t *testing.T) {
	start := textUpdate("/start")
	start.UpdateID = 1
	b, stub := setupLiveBot(t, start)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- b.Start(ctx) }()

	require.Eventually(t, func() bool { return stub.count("sendMessage") == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, stub.count("deleteWebhook"))
	assert.Equal(t, "456", stub.form("sendMessage").Get("chat_id"))
	assert.Equal(t, textWelcome, stub.form("sendMessage").Get("text"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop after cancellation")
	}
}

func TestBot_StartWebhookRegistersURL(t *testing.T) {
	b, stub := setupLiveBot(t)

	require.NoError(t, b.StartWebhook("https://bot.example.com"))

	form := stub.form("setWebhook")
	assert.Equal(t, "https://bot.example.com"+WebhookPath, form.Get("url"))
	assert.Equal(t, "40", form.Get("max_connections"))
	assert.Equal(t, 1, stub.count("getWebhookInfo"))
	assert.Zero(t, stub.count("getUpdates"))
}

func TestBot_StartWebhookInvalidURL(t *testing.T) {
	b, stub := setupLiveBot(t)

	assert.Error(t, b.StartWebhook("://broken"))
	assert.Zero(t, stub.count("setWebhook"))
}

func TestHTTPServer_WebhookUpdateReachesBot(t *testing.T) {
	b, stub := setupLiveBot(t)

	mux := http.NewServeMux()
	NewHTTPServer(context.Background(), b, true).RegisterRoutes(mux)

	body, err := json.Marshal(textUpdate("/start"))
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, WebhookPath, strings.NewReader(string(body)))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	require.Eventually(t, func() bool { return stub.count("sendMessage") == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, textWelcome, stub.form("sendMessage").Get("text"))
}
