// Package checkout is the linear order/payment wizard: cart review,
// shipping and payment-method selection, card capture when paying by card,
// then order submission and payment initiation/verification. Nothing here
// is persisted; abandoning the wizard loses entered data but leaves the
// cart untouched.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/deltapharm/pharmacy-client-golang/internal/cart"
	"github.com/deltapharm/pharmacy-client-golang/internal/models"
	"github.com/deltapharm/pharmacy-client-golang/internal/services"
	"github.com/deltapharm/pharmacy-client-golang/internal/session"
)

type Step int

const (
	StepCart Step = iota
	StepShipping
	StepCardDetails
	StepDone
)

// ValidationError is a pre-network failure. The wizard stays on the step
// it names; no backend round-trip happened.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

// CardDetails is captured only when the payment method is CARD. Expiry is
// MM/YY; CVV is exactly three digits.
type CardDetails struct {
	Number string `validate:"required"`
	Holder string `validate:"required"`
	Expiry string `validate:"required,cardexpiry"`
	CVV    string `validate:"required,len=3,number"`
}

type Wizard struct {
	cart     *cart.Container
	session  *session.Container
	orders   *services.OrderService
	payments *services.PaymentService
	validate *validator.Validate
	log      *slog.Logger

	step            Step
	shippingAddress string
	paymentMethod   string
	card            CardDetails
}

func NewWizard(c *cart.Container, s *session.Container, orders *services.OrderService, payments *services.PaymentService, log *slog.Logger) *Wizard {
	v := validator.New()
	// Registration cannot fail for a func that handles all kinds.
	_ = v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})

	return &Wizard{
		cart:          c,
		session:       s,
		orders:        orders,
		payments:      payments,
		validate:      v,
		log:           log,
		paymentMethod: models.PaymentMethodCash,
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) SetShippingAddress(address string) {
	w.shippingAddress = address
}

func (w *Wizard) SetPaymentMethod(method string) error {
	switch method {
	case models.PaymentMethodCash, models.PaymentMethodCard:
		w.paymentMethod = method
		return nil
	default:
		return &ValidationError{Step: StepShipping, Message: fmt.Sprintf("unknown payment method %q", method)}
	}
}

func (w *Wizard) SetCardDetails(card CardDetails) {
	w.card = card
}

// Submit runs the rest of the flow from wherever the entered data permits.
// Any validation failure returns before a single request is made and pins
// the wizard to the failing step. On success the cart is cleared; on
// backend failure it is untouched.
func (w *Wizard) Submit(ctx context.Context) (models.Order, error) {
	if err := w.validateInput(); err != nil {
		return models.Order{}, err
	}

	user := w.session.User()
	if user == nil {
		w.step = StepCart
		return models.Order{}, &ValidationError{Step: StepCart, Message: "not logged in"}
	}

	lines := w.cart.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	order, err := w.orders.Create(ctx, models.CreateOrderInput{
		UserID:          user.ID,
		Items:           items,
		ShippingAddress: w.shippingAddress,
		PaymentMethod:   w.paymentMethod,
	})
	if err != nil {
		w.step = StepShipping
		return models.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	if w.paymentMethod == models.PaymentMethodCard {
		if err := w.pay(ctx, order.ID, user.ID); err != nil {
			w.step = StepCardDetails
			return models.Order{}, err
		}
	}

	// The cart survives every failure above and only empties once the
	// order (and payment, for card) went through.
	if err := w.cart.Clear(); err != nil {
		w.log.Warn("order placed but cart could not be cleared", "order", order.ID, "err", err)
	}

	w.step = StepDone
	w.shippingAddress = ""
	w.card = CardDetails{}
	return order, nil
}

func (w *Wizard) validateInput() error {
	if len(w.cart.Lines()) == 0 {
		w.step = StepCart
		return &ValidationError{Step: StepCart, Message: "cart is empty"}
	}
	if strings.TrimSpace(w.shippingAddress) == "" {
		w.step = StepShipping
		return &ValidationError{Step: StepShipping, Message: "shipping address is required"}
	}
	if w.paymentMethod == models.PaymentMethodCard {
		if err := w.validate.Struct(w.card); err != nil {
			w.step = StepCardDetails
			return &ValidationError{Step: StepCardDetails, Message: cardValidationMessage(err)}
		}
	}
	return nil
}

func (w *Wizard) pay(ctx context.Context, orderID, userID int64) error {
	month, year, _ := strings.Cut(w.card.Expiry, "/")

	payment, err := w.payments.Initiate(ctx, models.InitiatePaymentInput{
		OrderID:        orderID,
		UserID:         userID,
		CardNumber:     strings.ReplaceAll(w.card.Number, " ", ""),
		CardHolderName: w.card.Holder,
		ExpiryMonth:    month,
		ExpiryYear:     year,
		CVV:            w.card.CVV,
	})
	if err != nil {
		return fmt.Errorf("failed to initiate payment: %w", err)
	}

	transactionID := payment.TransactionID
	if transactionID == "" {
		transactionID = "TXN-" + uuid.NewString()
	}

	err = w.payments.Verify(ctx, models.VerifyPaymentInput{
		PaymentID:     payment.ID,
		TransactionID: transactionID,
		Status:        models.PaymentCompleted,
	})
	if err != nil {
		// Verification is best effort; the simulated processor sometimes
		// skips it. The order stands either way.
		w.log.Warn("payment verification skipped", "payment", payment.ID, "err", err)
	}
	return nil
}

// cardValidationMessage maps validator errors to the messages the user sees.
func cardValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid card details"
	}

	fe := fieldErrs[0]
	switch {
	case fe.Tag() == "required":
		return "please fill in all payment details"
	case fe.Field() == "CVV":
		return "CVV must be 3 digits"
	case fe.Field() == "Expiry":
		return "expiry date must be in MM/YY format"
	default:
		return "invalid card details"
	}
}
