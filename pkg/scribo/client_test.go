package scribo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-courselab-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(t *testing.T, validReplies string) []byte {
	t.Helper()
	body := map[string]any{
		"response": map[string]any{
			"output_validator": map[string]any{
				"valid_replies": validReplies,
			},
		},
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return raw
}

func TestGenerateOutlineParsesNestedReply(t *testing.T) {
	outlineJSON := `{"title":"Customer Service","objectives":["listen"],"duration":"2h","summary":"basics","modules":[{"name":"Intro","duration":"10m","subtopics":["definitions"],"features":["video"]}]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-outline", r.URL.Path)
		w.Write(envelope(t, outlineJSON))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	outline, err := client.GenerateOutline(context.Background(), "customer service", "2h")
	require.NoError(t, err)

	assert.Equal(t, "Customer Service", outline.Title)
	require.Len(t, outline.Modules, 1)
	assert.Equal(t, "Intro", outline.Modules[0].Name)
	assert.Equal(t, []string{"video"}, outline.Modules[0].Features)
}

func TestUpdateOutlineParsesChangeSet(t *testing.T) {
	changesJSON := `{"title":"New Title","moduleChanges":{"add":[{"name":"Extra"}]}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/update-outline", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "script")
		assert.Equal(t, "tighten the intro", req["notes"])

		w.Write(envelope(t, changesJSON))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	changes, err := client.UpdateOutline(context.Background(), &store.DraftState{Title: "Old"}, "tighten the intro")
	require.NoError(t, err)

	require.NotNil(t, changes.Title)
	assert.Equal(t, "New Title", *changes.Title)
	require.NotNil(t, changes.ModuleChanges)
	require.Len(t, changes.ModuleChanges.Add, 1)
}

func TestMalformedReplyIsGenerationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope(t, "this is not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.UpdateOutline(context.Background(), &store.DraftState{}, "notes")
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "update-outline", genErr.Op)
}

func TestServerErrorIsGenerationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.GenerateOutline(context.Background(), "topic", "1h")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestGeneratePageReturnsTextVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope(t, "# Introduction\n\nLesson text."))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	content, err := client.GeneratePage(context.Background(), PageRequest{CourseTitle: "C", ModuleName: "M"})
	require.NoError(t, err)
	assert.Equal(t, "# Introduction\n\nLesson text.", content)
}
