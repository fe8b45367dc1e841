package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/fleetops/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.LedgerEvent) error {
	fmt.Printf("notify %s: %s on %s->%s, amount %.2f\n", event.Passenger, event.Type, event.Dep, event.Arv, event.Amount)
	return nil
}
