package relay

import (
	"sync"

	"claimsdesk/app/client/ollama"

	"github.com/google/uuid"
)

// session accumulates the role-tagged transcript for one connected client.
// Each websocket connection is served by a single reader goroutine, so the
// session itself needs no locking.
type session struct {
	messages []ollama.ChatMessage
}

func (s *session) append(role, content string) {
	s.messages = append(s.messages, ollama.ChatMessage{Role: role, Content: content})
}

// transcript returns the system prompt followed by the session history.
func (s *session) transcript(systemPrompt string) []ollama.ChatMessage {
	result := make([]ollama.ChatMessage, 0, len(s.messages)+1)
	result = append(result, ollama.ChatMessage{Role: ollama.RoleSystem, Content: systemPrompt})
	result = append(result, s.messages...)

	return result
}

// sessionStore tracks live sessions by id. Sessions are evicted when their
// connection closes.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
	}
}

func (s *sessionStore) Create() (string, *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	sess := &session{}
	s.sessions[id] = sess

	return id, sess
}

func (s *sessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

func (s *sessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
