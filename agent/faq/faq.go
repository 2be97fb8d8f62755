package faq

import (
	"fmt"
	"strings"
)

const fallbackAnswer = "You can ask about delivery, returns, prices, recommendations, or place an order."

type Config struct {
	DeliveryWindow string
	ReturnPolicy   string
}

// Service answers free-text questions by keyword matching. Deterministic,
// no ranking.
type Service struct {
	deliveryAnswer string
	returnPolicy   string
}

func NewService(cfg Config) *Service {
	return &Service{
		deliveryAnswer: fmt.Sprintf("Delivery time is %s.", cfg.DeliveryWindow),
		returnPolicy:   cfg.ReturnPolicy,
	}
}

func (s *Service) Answer(question string) string {
	q := strings.ToLower(question)
	if strings.Contains(q, "deliver") || strings.Contains(q, "shipping") {
		return s.deliveryAnswer
	}
	if strings.Contains(q, "return") || strings.Contains(q, "refund") {
		return s.returnPolicy
	}
	return fallbackAnswer
}
