package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/config"
	"clinic-agenda-server/internal/middleware"
	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/utils"
)

// BillingHandler handles the subscription checkout and the payment provider
// webhook.
type BillingHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewBillingHandler creates a new BillingHandler and configures the Stripe
// client key.
func NewBillingHandler(db *gorm.DB, cfg *config.Config) *BillingHandler {
	stripe.Key = cfg.Stripe.SecretKey
	return &BillingHandler{DB: db, Cfg: cfg}
}

// CheckoutSessionResponse carries the created Stripe checkout session id.
type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateCheckoutSession starts a subscription checkout for the basic plan.
// The user id travels in the subscription metadata so the webhook can tie
// the paid invoice back to the account.
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if h.Cfg.Stripe.SecretKey == "" || h.Cfg.Stripe.BasicPlanPriceID == "" {
		utils.InternalServerError(c, "Stripe is not configured")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load user: "+err.Error())
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(h.Cfg.Stripe.BasicPlanPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(user.Email),
		SuccessURL:    stripe.String(h.Cfg.Stripe.SuccessURL),
		CancelURL:     stripe.String(h.Cfg.Stripe.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"userId": user.ID},
		},
	}

	checkoutSession, err := session.New(params)
	if err != nil {
		utils.InternalServerError(c, "Failed to create checkout session: "+err.Error())
		return
	}

	utils.Created(c, "Checkout session created", CheckoutSessionResponse{SessionID: checkoutSession.ID})
}

// invoicePaidEvent is the slice of the invoice.paid payload this handler
// needs: the customer reference and the subscription details carrying the
// user id metadata.
type invoicePaidEvent struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Parent   struct {
		SubscriptionDetails struct {
			Subscription string            `json:"subscription"`
			Metadata     map[string]string `json:"metadata"`
		} `json:"subscription_details"`
	} `json:"parent"`
}

// subscriptionDeletedEvent is the slice of the customer.subscription.deleted
// payload this handler needs.
type subscriptionDeletedEvent struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

// StripeWebhook reconciles subscription state from asynchronous payment
// provider events. It verifies the payload signature and fails loudly on
// missing configuration, signature or expected fields. Both updates are
// last-write-wins field sets, so replays reapply harmlessly.
func (h *BillingHandler) StripeWebhook(c *gin.Context) {
	if h.Cfg.Stripe.SecretKey == "" || h.Cfg.Stripe.WebhookSecret == "" {
		utils.InternalServerError(c, "Stripe webhook is not configured")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		utils.BadRequest(c, "Stripe signature is not set")
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		utils.BadRequest(c, "Failed to read request body: "+err.Error())
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, h.Cfg.Stripe.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		utils.BadRequest(c, "Invalid webhook signature: "+err.Error())
		return
	}

	switch event.Type {
	case stripe.EventTypeInvoicePaid:
		if err := h.handleInvoicePaid(event.Data.Raw); err != nil {
			h.webhookError(c, err)
			return
		}
	case stripe.EventTypeCustomerSubscriptionDeleted:
		if err := h.handleSubscriptionDeleted(event.Data.Raw); err != nil {
			h.webhookError(c, err)
			return
		}
	}

	utils.Success(c, "Webhook received", gin.H{"received": true})
}

var errWebhookPayload = errors.New("webhook payload missing expected fields")

func (h *BillingHandler) handleInvoicePaid(raw json.RawMessage) error {
	var invoice invoicePaidEvent
	if err := json.Unmarshal(raw, &invoice); err != nil {
		return err
	}
	if invoice.ID == "" {
		return errWebhookPayload
	}

	userID := invoice.Parent.SubscriptionDetails.Metadata["userId"]
	if userID == "" {
		return errWebhookPayload
	}

	return h.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"plan":                   models.PlanBasic,
		"stripe_customer_id":     invoice.Customer,
		"stripe_subscription_id": invoice.Parent.SubscriptionDetails.Subscription,
	}).Error
}

func (h *BillingHandler) handleSubscriptionDeleted(raw json.RawMessage) error {
	var subscription subscriptionDeletedEvent
	if err := json.Unmarshal(raw, &subscription); err != nil {
		return err
	}
	if subscription.ID == "" {
		return errWebhookPayload
	}

	userID := subscription.Metadata["userId"]
	if userID == "" {
		return errWebhookPayload
	}

	return h.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"plan":                   nil,
		"stripe_customer_id":     nil,
		"stripe_subscription_id": nil,
	}).Error
}

func (h *BillingHandler) webhookError(c *gin.Context, err error) {
	if errors.Is(err, errWebhookPayload) {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.InternalServerError(c, "Failed to process webhook event: "+err.Error())
}
