package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwhite/mailagent/assistant"
	"github.com/kwhite/mailagent/compose"
	"github.com/kwhite/mailagent/dialogue"
	"github.com/kwhite/mailagent/extract"
	"github.com/kwhite/mailagent/store"
	"github.com/kwhite/mailagent/template"
	"github.com/kwhite/mailagent/types"
)

type stubExtractor struct {
	result *extract.Result
}

func (s *stubExtractor) Extract(ctx context.Context, userText string) (*extract.Result, error) {
	if s.result == nil {
		return &extract.Result{}, nil
	}
	return s.result, nil
}

type stubComposer struct{}

func (stubComposer) GenerateEmail(ctx context.Context, details types.EmailDetails) (*types.EmailDocument, error) {
	return &types.EmailDocument{Title: "t", Subject: "s", Content: "c"}, nil
}

func (stubComposer) Revise(ctx context.Context, current types.EmailDocument, feedback string) (*types.EmailDocument, error) {
	return &types.EmailDocument{Title: "t", Subject: "s2", Content: "c2"}, nil
}

func (stubComposer) Translate(ctx context.Context, req compose.TranslateRequest) (*types.EmailDocument, error) {
	return &types.EmailDocument{Title: "t", Subject: "s", Content: "bonjour"}, nil
}

func newTestRouter(t *testing.T, extractor *stubExtractor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	composer := stubComposer{}
	svc, err := assistant.NewService(
		extractor,
		&dialogue.LocalGenerator{},
		composer,
		composer,
		assistant.NewStateStore(store.NewMemoryCache[assistant.ConversationState]()),
		store.NewLedger(store.NewMemoryCache[[]types.Turn]()),
	)
	require.NoError(t, err)

	tplSvc, err := template.NewService(composer, composer)
	require.NoError(t, err)

	srv, err := New(svc, template.NewMemoryStore(), tplSvc)
	require.NoError(t, err)
	return srv.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		payload, err := sonic.Marshal(body)
		require.NoError(t, err)
		buf.Write(payload)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestNewConversation(t *testing.T) {
	router := newTestRouter(t, &stubExtractor{})
	w := doJSON(t, router, http.MethodPost, "/api/assistant/new-conversation", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[map[string]string](t, w)
	assert.NotEmpty(t, body["conversation_id"])
}

func TestChatFollowUpThenConfirmation(t *testing.T) {
	extractor := &stubExtractor{result: &extract.Result{Recipient: types.Ptr("Sarah")}}
	router := newTestRouter(t, extractor)

	w := doJSON(t, router, http.MethodPost, "/api/assistant/chat", ChatRequest{
		ConversationID: "conv-1",
		UserMessage:    "email Sarah",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[assistant.Response](t, w)
	assert.Equal(t, assistant.ResponseFollowUp, resp.Type)
	assert.False(t, resp.RequiresConfirmation)
	assert.Equal(t, []string{"purpose", "context"}, resp.MissingFields)

	extractor.result = &extract.Result{
		Purpose: types.Ptr("budget"),
		Context: types.Ptr("Q3"),
	}
	w = doJSON(t, router, http.MethodPost, "/api/assistant/chat", ChatRequest{
		ConversationID: "conv-1",
		UserMessage:    "it's about the Q3 budget",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody[assistant.Response](t, w)
	assert.Equal(t, assistant.ResponseConfirmation, resp.Type)
	assert.True(t, resp.RequiresConfirmation)
}

func TestChatValidatesBody(t *testing.T) {
	router := newTestRouter(t, &stubExtractor{})
	w := doJSON(t, router, http.MethodPost, "/api/assistant/chat", map[string]string{"user_message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmUnknownConversationIs404(t *testing.T) {
	router := newTestRouter(t, &stubExtractor{})
	w := doJSON(t, router, http.MethodPost, "/api/assistant/confirm-and-generate", ConfirmRequest{
		ConversationID: "unknown",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviseUnknownConversationIs404(t *testing.T) {
	router := newTestRouter(t, &stubExtractor{})
	w := doJSON(t, router, http.MethodPost, "/api/assistant/revise", ReviseRequest{
		ConversationID: "unknown",
		Feedback:       "shorter",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmAndGenerateFlow(t *testing.T) {
	extractor := &stubExtractor{result: &extract.Result{
		Recipient: types.Ptr("Sarah"),
		Purpose:   types.Ptr("budget"),
		Context:   types.Ptr("Q3"),
	}}
	router := newTestRouter(t, extractor)

	w := doJSON(t, router, http.MethodPost, "/api/assistant/chat", ChatRequest{
		ConversationID: "conv-1",
		UserMessage:    "email Sarah about the Q3 budget",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/assistant/confirm-and-generate", ConfirmRequest{
		ConversationID: "conv-1",
		ConfirmedDetails: types.EmailDetails{
			Recipient: types.Ptr("Sarah"),
			Purpose:   types.Ptr("budget"),
			Context:   types.Ptr("Q3"),
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[assistant.Response](t, w)
	assert.Equal(t, assistant.ResponseGeneration, resp.Type)
	require.NotNil(t, resp.GeneratedEmail)

	w = doJSON(t, router, http.MethodGet, "/api/assistant/details/conv-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decodeBody[assistant.ConversationState](t, w)
	assert.Equal(t, types.PhaseGenerating, state.Phase)
	assert.True(t, state.IsConfirmed)

	w = doJSON(t, router, http.MethodGet, "/api/assistant/conversation/conv-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	turns := decodeBody[[]types.Turn](t, w)
	assert.NotEmpty(t, turns)
}

func TestTemplateCRUD(t *testing.T) {
	router := newTestRouter(t, &stubExtractor{})

	w := doJSON(t, router, http.MethodPost, "/api/email-templates", CreateTemplateRequest{
		Title:   "Intro",
		Subject: "Hello",
		Content: "Hi there",
		Purpose: "introduction",
	})
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeBody[template.Template](t, w)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "en", created.Language)

	w = doJSON(t, router, http.MethodPut, "/api/email-templates/1", map[string]string{"subject": "Hello again"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[template.Template](t, w)
	assert.Equal(t, "Hello again", updated.Subject)
	assert.Equal(t, "Intro", updated.Title)

	w = doJSON(t, router, http.MethodGet, "/api/email-templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decodeBody[[]template.Template](t, w)
	assert.Len(t, listed, 1)

	w = doJSON(t, router, http.MethodDelete, "/api/email-templates/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/email-templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed = decodeBody[[]template.Template](t, w)
	assert.Empty(t, listed)

	w = doJSON(t, router, http.MethodGet, "/api/email-templates/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplateTranslate(t *testing.T) {
	router := newTestRouter(t, &stubExtractor{})
	w := doJSON(t, router, http.MethodPost, "/api/email-templates/translate", template.TranslateRequest{
		Content:        "hello",
		TargetLanguage: "fr",
	})
	require.Equal(t, http.StatusOK, w.Code)
	doc := decodeBody[types.EmailDocument](t, w)
	assert.Equal(t, "bonjour", doc.Content)
}

func TestTemplateGenerateRequiresPurpose(t *testing.T) {
	router := newTestRouter(t, &stubExtractor{})
	w := doJSON(t, router, http.MethodPost, "/api/email-templates/generate", template.GenerateRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
