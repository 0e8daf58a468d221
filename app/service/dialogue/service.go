package dialogue

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"claimsdesk/app/config"
	"claimsdesk/app/service/responder"
	"claimsdesk/app/service/store"

	"github.com/google/uuid"
	"github.com/samber/do"
)

// Service is the dialogue state tracker: it owns the per-conversation slots
// and transcript, and serializes every mutation behind one mutex.
type Service struct {
	cfg      *config.Config
	storeSvc *store.Service

	// Simulated agent typing delay. Zero commits replies inline.
	delay time.Duration

	mu       sync.Mutex
	customer *store.Customer
	messages []store.Message
	slots    responder.Slots
	// Bumped on every reset; deferred commits carrying a stale generation are
	// discarded instead of leaking into the next customer's conversation.
	generation uint64
	onDispute  func(store.DisputeCase)
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	s := &Service{
		cfg:      cfg,
		storeSvc: do.MustInvoke[*store.Service](di),
		delay:    time.Duration(cfg.Dialogue.TypingDelayMs) * time.Millisecond,
	}

	s.ResetForCustomer(nil)

	return s, nil
}

// NewForTest wires a tracker without the injector. A nil store disables
// persistence; zero delay makes Submit commit the agent reply synchronously.
func NewForTest(cfg *config.Config, storeSvc *store.Service, delay time.Duration) *Service {
	s := &Service{
		cfg:      cfg,
		storeSvc: storeSvc,
		delay:    delay,
	}

	s.ResetForCustomer(nil)

	return s
}

// OnDispute registers the dispute-creation callback. When none is registered
// new cases are persisted directly.
func (s *Service) OnDispute(fn func(store.DisputeCase)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onDispute = fn
}

// ResetForCustomer switches the active customer context: all slots are
// cleared and the transcript is reseeded with a single greeting.
func (s *Service) ResetForCustomer(customer *store.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.customer = customer
	s.slots = responder.Slots{}

	greeting := fmt.Sprintf("Hello! I'm %s. How can I help you today?", s.agentName())
	if customer != nil {
		greeting = fmt.Sprintf(
			"Hello %s! I'm %s. I can look up your transactions, answer account questions "+
				"or help you dispute a charge.",
			customer.Name, s.agentName())
	}

	s.messages = []store.Message{s.newMessage(greeting, store.SenderAgent)}
}

// Submit records a user utterance and schedules the agent's reply. The reply
// and its slot patch commit atomically after the typing delay; with zero
// delay they commit before Submit returns. The returned transcript and slots
// reflect the state at return time.
func (s *Service) Submit(text string) ([]store.Message, responder.Slots) {
	s.mu.Lock()

	userMsg := s.newMessage(text, store.SenderUser)
	s.messages = append(s.messages, userMsg)

	customer := s.customer
	slots := s.slots
	generation := s.generation

	s.mu.Unlock()

	s.persist(userMsg)

	reply := responder.Generate(text, customer, slots)

	if s.delay <= 0 {
		s.commit(generation, reply)
	} else {
		time.AfterFunc(s.delay, func() {
			s.commit(generation, reply)
		})
	}

	return s.Transcript(), s.Slots()
}

func (s *Service) commit(generation uint64, reply responder.Reply) {
	s.mu.Lock()

	if generation != s.generation {
		s.mu.Unlock()
		slog.Debug("Discarding reply for a stale conversation", "text", reply.Text)
		return
	}

	if reply.Slots != nil {
		s.slots = *reply.Slots
	}

	agentMsg := s.newMessage(reply.Text, store.SenderAgent)
	s.messages = append(s.messages, agentMsg)

	onDispute := s.onDispute

	s.mu.Unlock()

	s.persist(agentMsg)

	if reply.Dispute != nil {
		if onDispute != nil {
			onDispute(*reply.Dispute)
			return
		}

		if s.storeSvc != nil {
			if err := s.storeSvc.SaveDispute(*reply.Dispute); err != nil {
				slog.Error("Failed to persist dispute", "id", reply.Dispute.ID, "error", err)
			}
		}
	}
}

// Transcript returns a snapshot of the conversation messages.
func (s *Service) Transcript() []store.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]store.Message, len(s.messages))
	copy(result, s.messages)

	return result
}

// Slots returns a snapshot of the current dialogue slots.
func (s *Service) Slots() responder.Slots {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.slots
}

// Customer returns the active customer context, nil when none is selected.
func (s *Service) Customer() *store.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.customer
}

func (s *Service) newMessage(text string, sender store.Sender) store.Message {
	var customerID string
	if s.customer != nil {
		customerID = s.customer.ID
	}

	return store.Message{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Text:       text,
		Sender:     sender,
		Timestamp:  time.Now(),
	}
}

// persist is fire and forget: a storage failure is logged, never surfaced.
func (s *Service) persist(msg store.Message) {
	if s.storeSvc == nil {
		return
	}

	if err := s.storeSvc.SaveMessage(msg); err != nil {
		slog.Error("Failed to persist message", "id", msg.ID, "error", err)
	}
}

func (s *Service) agentName() string {
	if s.cfg != nil && s.cfg.Dialogue.AgentName != "" {
		return s.cfg.Dialogue.AgentName
	}

	return "Claims Assistant"
}
