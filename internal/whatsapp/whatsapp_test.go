package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyHandshake(t *testing.T) {
	b := NewBridge(nil, nil, "secret-token")

	challenge, ok := b.VerifyHandshake("subscribe", "secret-token", "12345")
	require.True(t, ok)
	assert.Equal(t, "12345", challenge)

	_, ok = b.VerifyHandshake("subscribe", "wrong", "12345")
	assert.False(t, ok)

	_, ok = b.VerifyHandshake("unsubscribe", "secret-token", "12345")
	assert.False(t, ok)

	// Unconfigured token never verifies.
	empty := NewBridge(nil, nil, "")
	_, ok = empty.VerifyHandshake("subscribe", "", "12345")
	assert.False(t, ok)
}

func TestClientSendText(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "phone-42", "tok")
	require.NoError(t, c.SendText(context.Background(), "+15550001111", "hello"))

	assert.Equal(t, "/phone-42/messages", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "whatsapp", gotBody["messaging_product"])
	assert.Equal(t, "+15550001111", gotBody["to"])
	text, _ := gotBody["text"].(map[string]any)
	assert.Equal(t, "hello", text["body"])
}

func TestClientSendTextNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "phone-42", "tok")
	assert.Error(t, c.SendText(context.Background(), "+15550001111", "hello"))
}

func TestHandleInboundEmptyPayload(t *testing.T) {
	b := NewBridge(nil, nil, "t")
	assert.Error(t, b.HandleInbound(context.Background(), InboundPayload{}))
}

func TestInboundPayloadDecoding(t *testing.T) {
	raw := `{"entry":[{"changes":[{"value":{"messages":[{"from":"15550001111","text":{"body":"help"}}]}}]}]}`
	var payload InboundPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	require.Len(t, payload.Entry, 1)
	msg := payload.Entry[0].Changes[0].Value.Messages[0]
	assert.Equal(t, "15550001111", msg.From)
	assert.Equal(t, "help", msg.Text.Body)
}
