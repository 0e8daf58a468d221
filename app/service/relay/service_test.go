package relay

import (
	"context"
	"errors"
	"testing"

	"claimsdesk/app/client/ollama"
	"claimsdesk/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply string
	err   error
	calls [][]ollama.ChatMessage
}

func (f *fakeCompleter) Chat(_ context.Context, messages []ollama.ChatMessage) (string, error) {
	f.calls = append(f.calls, messages)

	if f.err != nil {
		return "", f.err
	}

	return f.reply, nil
}

func testRelay(llm completer) *Service {
	return &Service{
		cfg:      &config.Config{},
		llm:      llm,
		sessions: newSessionStore(),
	}
}

func TestStartDisputeForwardsSystemPrompt(t *testing.T) {
	llm := &fakeCompleter{reply: "Let's get started."}
	svc := testRelay(llm)
	_, sess := svc.sessions.Create()

	reply := svc.startDispute(sess)

	assert.Equal(t, "Let's get started.", reply)
	require.Len(t, llm.calls, 1)
	assert.Equal(t, ollama.RoleSystem, llm.calls[0][0].Role)
	assert.Equal(t, systemPrompt, llm.calls[0][0].Content)
}

func TestStartDisputeFallsBackOnError(t *testing.T) {
	svc := testRelay(&fakeCompleter{err: errors.New("connection refused")})
	_, sess := svc.sessions.Create()

	reply := svc.startDispute(sess)

	assert.Equal(t, startFallback, reply)
}

func TestUserMessageAccumulatesTranscript(t *testing.T) {
	llm := &fakeCompleter{reply: "Understood."}
	svc := testRelay(llm)
	_, sess := svc.sessions.Create()

	svc.userMessage(sess, "It was a charge from last week.")
	svc.userMessage(sess, "No, I never contacted them.")

	require.Len(t, llm.calls, 2)

	// second call carries system prompt + full history
	second := llm.calls[1]
	require.Len(t, second, 4)
	assert.Equal(t, ollama.RoleSystem, second[0].Role)
	assert.Equal(t, ollama.RoleUser, second[1].Role)
	assert.Equal(t, ollama.RoleAssistant, second[2].Role)
	assert.Equal(t, "Understood.", second[2].Content)
	assert.Equal(t, "No, I never contacted them.", second[3].Content)
}

func TestUserMessageFallsBackOnError(t *testing.T) {
	svc := testRelay(&fakeCompleter{err: errors.New("timeout")})
	_, sess := svc.sessions.Create()

	reply := svc.userMessage(sess, "hello?")

	assert.Contains(t, fallbackResponses, reply)
}

func TestFailedCompletionNotAddedToTranscript(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("down")}
	svc := testRelay(llm)
	_, sess := svc.sessions.Create()

	svc.userMessage(sess, "first")

	// the user message stays, the failed completion does not
	require.Len(t, sess.messages, 1)
	assert.Equal(t, ollama.RoleUser, sess.messages[0].Role)
}

func TestSessionEviction(t *testing.T) {
	store := newSessionStore()

	id1, _ := store.Create()
	id2, _ := store.Create()
	require.Equal(t, 2, store.Len())

	store.Delete(id1)
	assert.Equal(t, 1, store.Len())

	store.Delete(id2)
	assert.Equal(t, 0, store.Len())
}

func TestStartDisputeResetsSession(t *testing.T) {
	llm := &fakeCompleter{reply: "ok"}
	svc := testRelay(llm)
	_, sess := svc.sessions.Create()

	svc.userMessage(sess, "old conversation")
	require.NotEmpty(t, sess.messages)

	svc.startDispute(sess)

	assert.Empty(t, sess.messages)
}
