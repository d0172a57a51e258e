package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/payOSHQ/payos-lib-golang"
	"gorm.io/gorm"

	dbm "invisifeed/internal/models/db_models"
	"invisifeed/internal/models/response_models"
)

type PayOSConfig struct {
	ClientID    string
	ApiKey      string
	ChecksumKey string
	ReturnURL   string
	CancelURL   string
	// Stored on Transaction.Provider
	ProviderName string
}

type PaymentService interface {
	CreateCheckoutForPlan(ctx context.Context, ownerID uuid.UUID, planCode string) (*response_models.CreateCheckoutResponse, error)
	HandleWebhook(c *gin.Context)
}

type paymentService struct {
	db  *gorm.DB
	cfg PayOSConfig
}

func NewPaymentService(db *gorm.DB, cfg PayOSConfig) (PaymentService, error) {
	if cfg.ClientID == "" || cfg.ApiKey == "" || cfg.ChecksumKey == "" {
		return nil, errors.New("missing payOS credentials")
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = "payos"
	}
	return &paymentService{db: db, cfg: cfg}, nil
}

func (p *paymentService) CreateCheckoutForPlan(ctx context.Context, ownerID uuid.UUID, planCode string) (*response_models.CreateCheckoutResponse, error) {
	var plan dbm.Plan
	if err := p.db.WithContext(ctx).
		Where("code = ? AND is_active = TRUE", planCode).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plan not found: %s", planCode)
		}
		return nil, err
	}

	amount := plan.PriceMinor
	if amount <= 0 {
		return nil, fmt.Errorf("plan %s is not billable (amount=%d)", planCode, amount)
	}

	// payOS order codes are int64 and capped at 13 digits. Unix seconds plus
	// a short random suffix keeps collisions unlikely across owners.
	orderCode := time.Now().Unix()%1_000_000_000 + int64(rand.Intn(9000)+1000)

	txn := &dbm.Transaction{
		OwnerID:       ownerID,
		PlanID:        &plan.ID,
		AmountMinor:   amount,
		Currency:      strings.ToUpper(plan.Currency),
		Status:        dbm.TxnStatusPending,
		Provider:      p.cfg.ProviderName,
		ProviderTxnID: fmt.Sprintf("payos:%d", orderCode),
	}
	if err := p.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	item := payos.Item{
		Name:     fmt.Sprintf("%s (%s)", plan.Name, plan.Code),
		Price:    int(amount),
		Quantity: 1,
	}
	body := payos.CheckoutRequestType{
		OrderCode:   orderCode,
		Amount:      int(amount),
		Items:       []payos.Item{item},
		Description: fmt.Sprintf("Plan upgrade %s", plan.Code),
		CancelUrl:   p.cfg.CancelURL,
		ReturnUrl:   p.cfg.ReturnURL,
	}

	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		return nil, fmt.Errorf("payos client init: %w", err)
	}

	link, err := payos.CreatePaymentLink(body)
	if err != nil {
		_ = p.db.WithContext(ctx).Model(txn).
			Update("status", dbm.TxnStatusFailed).Error
		return nil, fmt.Errorf("payos create link: %w", err)
	}

	meta := map[string]any{
		"payos_link": link,
		"plan_id":    plan.ID,
		"plan_code":  plan.Code,
	}
	if bytes, _ := json.Marshal(meta); bytes != nil {
		_ = p.db.WithContext(ctx).Model(txn).Update("metadata", bytes).Error
	}

	return &response_models.CreateCheckoutResponse{
		CheckoutURL: link.CheckoutUrl,
		OrderCode:   orderCode,
		AmountMinor: amount,
		Currency:    txn.Currency,
	}, nil
}

func (p *paymentService) HandleWebhook(c *gin.Context) {
	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		log.Printf("payos key init: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment gateway unavailable"})
		return
	}

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	var body payos.WebhookType
	if err := json.Unmarshal(rawBody, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
		return
	}

	data, payosErr := payos.VerifyPaymentWebhookData(body)
	if payosErr != nil {
		log.Printf("webhook signature rejected: %v", payosErr)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to verify webhook data"})
		return
	}

	providerTxn := fmt.Sprintf("payos:%d", data.OrderCode)

	var txn dbm.Transaction
	if err := p.db.Where("provider_txn_id = ?", providerTxn).First(&txn).Error; err != nil {
		// Ack with 200 so payOS does not retry forever; log for investigation.
		log.Printf("webhook: transaction not found for order %d", data.OrderCode)
		c.JSON(http.StatusOK, gin.H{"message": "ignored"})
		return
	}

	// Idempotent: a transaction already marked paid is a replayed webhook.
	if txn.Status != dbm.TxnStatusPaid {
		now := time.Now().Unix()
		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&txn).Updates(map[string]interface{}{
				"status":  dbm.TxnStatusPaid,
				"paid_at": now,
			}).Error; err != nil {
				return err
			}
			return p.activatePlan(tx, &txn)
		})
		if err != nil {
			log.Printf("webhook: failed to activate plan for order %d: %v", data.OrderCode, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process transaction"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// activatePlan flips the owner to the purchased plan. Owners already on a
// paid plan get the new period appended after their current one.
func (p *paymentService) activatePlan(tx *gorm.DB, txn *dbm.Transaction) error {
	if txn.PlanID == nil {
		return fmt.Errorf("transaction %s has no plan reference", txn.ID)
	}

	var plan dbm.Plan
	if err := tx.Where("id = ? AND is_active = TRUE", *txn.PlanID).First(&plan).Error; err != nil {
		return fmt.Errorf("plan not found while activating: %w", err)
	}

	var owner dbm.Owner
	if err := tx.Where("id = ?", txn.OwnerID).First(&owner).Error; err != nil {
		return fmt.Errorf("owner not found while activating: %w", err)
	}

	now := time.Now()
	starts := now
	if owner.PlanName != dbm.PlanFree && owner.PlanEndsAt > now.Unix() {
		starts = time.Unix(owner.PlanEndsAt, 0)
	}

	var ends time.Time
	switch plan.Period {
	case dbm.PeriodYear:
		ends = starts.AddDate(1, 0, 0)
	default:
		ends = starts.AddDate(0, 1, 0)
	}

	return tx.Model(&owner).Updates(map[string]interface{}{
		"plan_name":      dbm.PlanPro,
		"plan_starts_at": starts.Unix(),
		"plan_ends_at":   ends.Unix(),
	}).Error
}
