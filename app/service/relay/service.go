package relay

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"claimsdesk/app/client/ollama"
	"claimsdesk/app/config"
	"claimsdesk/app/service/dialogue"
	"claimsdesk/app/service/store"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const systemPrompt = "You are a helpful dispute resolution assistant. " +
	"Guide the customer through the dispute process by asking relevant questions " +
	"about merchant communication and PIN usage."

const startFallback = "Hello! I'm here to help you with your dispute. " +
	"To get started, could you please provide the following information:\n\n" +
	"1. Transaction date and amount\n" +
	"2. Merchant name\n" +
	"3. Have you already contacted the merchant about this issue?"

// Substituted for the model's reply whenever the completion call fails. The
// client never sees an error.
var fallbackResponses = []string{
	"I understand. Could you please provide more details about your communication with the merchant?",
	"Thank you for that information. Have you used your PIN for this transaction?",
	"I'm processing your information. Could you confirm the exact date and time of the transaction?",
	"I'm here to help. Could you tell me if you've received any response from the merchant?",
	"Thank you for providing that information. I'm setting up your claim. Is there anything else you'd like to add?",
}

type completer interface {
	Chat(ctx context.Context, messages []ollama.ChatMessage) (string, error)
}

type inboundEvent struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type outboundEvent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Service struct {
	cfg         *config.Config
	llm         completer
	storeSvc    *store.Service
	dialogueSvc *dialogue.Service
	sessions    *sessionStore
	app         *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:         do.MustInvoke[*config.Config](di),
		llm:         do.MustInvoke[*ollama.Client](di),
		storeSvc:    do.MustInvoke[*store.Service](di),
		dialogueSvc: do.MustInvoke[*dialogue.Service](di),
		sessions:    newSessionStore(),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.Server.AllowedOrigin,
		AllowMethods: "GET,POST,OPTIONS",
	}))

	s.app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	s.registerAPI()

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}

		return fiber.ErrUpgradeRequired
	})

	s.app.Get("/ws", websocket.New(s.handleSocket))

	return s, nil
}

func (s *Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Relay server listening", "addr", s.cfg.Server.Addr)
		return s.app.Listen(s.cfg.Server.Addr)
	})

	g.Go(func() error {
		<-ctx.Done()
		return s.app.ShutdownWithTimeout(5 * time.Second)
	})

	return g.Wait()
}

func (s *Service) handleSocket(conn *websocket.Conn) {
	sessionID, sess := s.sessions.Create()
	defer s.sessions.Delete(sessionID)

	slog.Debug("Client connected", "session", sessionID)

	for {
		var event inboundEvent
		if err := conn.ReadJSON(&event); err != nil {
			slog.Debug("Client disconnected", "session", sessionID)
			return
		}

		var reply string
		switch event.Type {
		case "startDispute":
			reply = s.startDispute(sess)
		case "userMessage":
			reply = s.userMessage(sess, event.Message)
		default:
			slog.Warn("Unknown event type", "type", event.Type, "session", sessionID)
			continue
		}

		if err := conn.WriteJSON(outboundEvent{Type: "botResponse", Text: reply}); err != nil {
			slog.Warn("Failed to write response", "session", sessionID, "error", err)
			return
		}
	}
}

func (s *Service) startDispute(sess *session) string {
	sess.messages = nil

	reply, err := s.llm.Chat(context.Background(), []ollama.ChatMessage{
		{Role: ollama.RoleSystem, Content: systemPrompt},
		{Role: ollama.RoleUser, Content: "I want to start a dispute for my transaction."},
	})
	if err != nil {
		slog.Warn("Completion failed, using start fallback", "error", err)
		return startFallback
	}

	return reply
}

func (s *Service) userMessage(sess *session, message string) string {
	sess.append(ollama.RoleUser, message)

	reply, err := s.llm.Chat(context.Background(), sess.transcript(systemPrompt))
	if err != nil {
		slog.Warn("Completion failed, using canned fallback", "error", err)
		return fallbackResponses[rand.IntN(len(fallbackResponses))]
	}

	sess.append(ollama.RoleAssistant, reply)

	return reply
}
