// Package disbursement pushes approved advances out to employees
// through Stripe payouts. When no Stripe key is configured the service
// runs in simulated mode and mints local references, which is what the
// demo environment uses.
package disbursement

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"salarysync/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/payout"
)

var ErrPayoutFailed = errors.New("payout failed")

// Payout is the outcome of a disbursement attempt.
type Payout struct {
	Reference string    `json:"reference"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Simulated bool      `json:"simulated"`
	CreatedAt time.Time `json:"created_at"`
}

type Service interface {
	Disburse(user *models.User, amount float64) (*Payout, error)
}

type service struct {
	currency string
}

func NewService(currency string) Service {
	if currency == "" {
		currency = "inr"
	}
	return &service{currency: currency}
}

func (s *service) Disburse(user *models.User, amount float64) (*Payout, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: non-positive amount", ErrPayoutFailed)
	}

	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" || strings.HasPrefix(key, "sk_test_") {
		// Simulated payout for demo and test environments.
		p := &Payout{
			Reference: "po_sim_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16],
			Amount:    amount,
			Currency:  s.currency,
			Simulated: true,
			CreatedAt: time.Now(),
		}
		log.Info().Uint("user_id", user.ID).Float64("amount", amount).
			Str("reference", p.Reference).Msg("simulated payout")
		return p, nil
	}

	stripe.Key = key

	params := &stripe.PayoutParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(s.currency),
	}
	params.AddMetadata("user_id", fmt.Sprintf("%d", user.ID))

	po, err := payout.New(params)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("stripe payout failed")
		return nil, fmt.Errorf("%w: %v", ErrPayoutFailed, err)
	}

	return &Payout{
		Reference: po.ID,
		Amount:    amount,
		Currency:  s.currency,
		CreatedAt: time.Unix(po.Created, 0),
	}, nil
}
