package relay

import (
	"errors"

	"claimsdesk/app/service/store"

	"github.com/gofiber/fiber/v2"
)

type selectCustomerRequest struct {
	CustomerID string `json:"customerId"`
}

type submitRequest struct {
	Text string `json:"text"`
}

// Agent-desk API: the UI-facing contract of the dialogue core (submit an
// utterance, switch customer context, read transcript and slots) plus read
// access to customers and dispute cases.
func (s *Service) registerAPI() {
	s.app.Get("/api/customers", s.handleListCustomers)
	s.app.Post("/api/customers", s.handleAddCustomer)
	s.app.Get("/api/disputes", s.handleListDisputes)
	s.app.Get("/api/disputes/:id", s.handleGetDispute)
	s.app.Delete("/api/disputes/:id", s.handleDeleteDispute)

	s.app.Get("/api/conversation", s.handleGetConversation)
	s.app.Post("/api/conversation/customer", s.handleSelectCustomer)
	s.app.Post("/api/conversation/message", s.handleSubmitMessage)
}

func (s *Service) handleListCustomers(c *fiber.Ctx) error {
	customers, err := s.storeSvc.GetAllCustomers()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(customers)
}

func (s *Service) handleAddCustomer(c *fiber.Ctx) error {
	var customer store.Customer
	if err := c.BodyParser(&customer); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if customer.ID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "customer id is required")
	}

	if err := s.storeSvc.SaveCustomer(customer); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusCreated)
}

func (s *Service) handleListDisputes(c *fiber.Ctx) error {
	disputes, err := s.storeSvc.GetAllDisputes()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(disputes)
}

func (s *Service) handleGetDispute(c *fiber.Ctx) error {
	dispute, err := s.storeSvc.GetDisputeByID(c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(dispute)
}

func (s *Service) handleDeleteDispute(c *fiber.Ctx) error {
	if err := s.storeSvc.DeleteDispute(c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Service) handleGetConversation(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"messages": s.dialogueSvc.Transcript(),
		"slots":    s.dialogueSvc.Slots(),
		"customer": s.dialogueSvc.Customer(),
	})
}

func (s *Service) handleSelectCustomer(c *fiber.Ctx) error {
	var req selectCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if req.CustomerID == "" {
		s.dialogueSvc.ResetForCustomer(nil)
		return c.JSON(fiber.Map{"messages": s.dialogueSvc.Transcript()})
	}

	customer, err := s.storeSvc.GetCustomerByID(req.CustomerID)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	s.dialogueSvc.ResetForCustomer(&customer)

	return c.JSON(fiber.Map{"messages": s.dialogueSvc.Transcript()})
}

func (s *Service) handleSubmitMessage(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if req.Text == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}

	messages, slots := s.dialogueSvc.Submit(req.Text)

	return c.JSON(fiber.Map{
		"messages": messages,
		"slots":    slots,
	})
}
