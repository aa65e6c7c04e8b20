package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tusharsraj1907-hash/AIrena/cache"
	"github.com/tusharsraj1907-hash/AIrena/mail"
	"github.com/tusharsraj1907-hash/AIrena/model"
	"github.com/tusharsraj1907-hash/AIrena/receipt"
)

// Platform fee charged for creating a hackathon, in the smallest
// currency unit.
const (
	HackathonCreationFee int64 = 499900
	PlatformCurrency           = "INR"

	paymentMethodCard = "CARD"
	historyCacheTTL   = 5 * time.Minute
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrVerificationFailed = errors.New("payment verification failed")
)

// EventPublisher pushes payment.paid events to the broker. Nil disables
// publishing.
type EventPublisher interface {
	PublishPaymentPaid(event interface{})
}

type PaymentService struct {
	DB       *gorm.DB
	Receipts *receipt.Service
	Mailer   mail.Sender
	Producer EventPublisher
	Redis    *redis.Client

	// dispatch runs the post-payment pipeline; replaced in tests to run
	// synchronously. sendDelay is the pause between mail retry attempts.
	dispatch  func(func())
	sendDelay time.Duration
}

func NewPaymentService(db *gorm.DB, receipts *receipt.Service, mailer mail.Sender, producer EventPublisher, rdb *redis.Client) *PaymentService {
	return &PaymentService{
		DB:        db,
		Receipts:  receipts,
		Mailer:    mailer,
		Producer:  producer,
		Redis:     rdb,
		dispatch:  func(fn func()) { go fn() },
		sendDelay: mail.SendDelay,
	}
}

type OrderResponse struct {
	PaymentID      uint      `json:"payment_id"`
	UserID         uint      `json:"user_id"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	InvoiceID      string    `json:"invoice_id"`
	HackathonTitle string    `json:"hackathon_title,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	// Mock order id for the frontend to simulate the provider checkout.
	MockOrderID string `json:"mock_order_id"`
}

// CreateOrder opens a PENDING payment for the fixed hackathon-creation
// fee.
func (s *PaymentService) CreateOrder(hostID uint) (*OrderResponse, error) {
	payment := model.Payment{
		HostID:    hostID,
		Amount:    HackathonCreationFee,
		Currency:  PlatformCurrency,
		Status:    model.PaymentPending,
		InvoiceID: newInvoiceID("INV"),
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return nil, err
	}

	s.invalidateHistory(hostID)

	return &OrderResponse{
		PaymentID:   payment.ID,
		UserID:      payment.HostID,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Status:      payment.Status,
		InvoiceID:   payment.InvoiceID,
		CreatedAt:   payment.CreatedAt,
		MockOrderID: newMockOrderID(),
	}, nil
}

// CreateParticipantOrder opens a PENDING payment for a hackathon's
// registration fee and records a PENDING registration for the payer.
func (s *PaymentService) CreateParticipantOrder(participantID, hackathonID uint) (*OrderResponse, error) {
	var hackathon model.Hackathon
	if err := s.DB.First(&hackathon, hackathonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	currency := hackathon.PrizeCurrency
	if currency == "" {
		currency = PlatformCurrency
	}

	payment := model.Payment{
		HostID:      participantID,
		HackathonID: &hackathon.ID,
		Amount:      hackathon.RegistrationFee,
		Currency:    currency,
		Status:      model.PaymentPending,
		InvoiceID:   newInvoiceID("PART"),
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return nil, err
	}

	var reg model.Registration
	err := s.DB.Where("hackathon_id = ? AND user_id = ?", hackathon.ID, participantID).First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		reg = model.Registration{
			HackathonID: hackathon.ID,
			UserID:      participantID,
			Status:      model.RegistrationPending,
		}
		if err := s.DB.Create(&reg).Error; err != nil {
			log.Printf("failed to record registration for hackathon %d: %v", hackathon.ID, err)
		}
	}

	s.invalidateHistory(participantID)

	return &OrderResponse{
		PaymentID:      payment.ID,
		UserID:         payment.HostID,
		Amount:         payment.Amount,
		Currency:       payment.Currency,
		Status:         payment.Status,
		InvoiceID:      payment.InvoiceID,
		HackathonTitle: hackathon.Title,
		CreatedAt:      payment.CreatedAt,
		MockOrderID:    newMockOrderID(),
	}, nil
}

// VerifyPayment checks the provider reference and settles the payment.
//
// The status flip is a single conditional update guarded on PENDING, so
// two racing verification calls produce exactly one transition and one
// post-payment pipeline run. Re-verifying a SUCCESS payment returns the
// stored record untouched.
func (s *PaymentService) VerifyPayment(paymentID uint, providerPaymentID string) (*model.Payment, error) {
	var payment model.Payment
	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if payment.Status == model.PaymentSuccess {
		return &payment, nil
	}

	// Placeholder for real signature verification against the provider:
	// live references start with pay_, the mock provider uses
	// test_provider_.
	if !strings.HasPrefix(providerPaymentID, "pay_") && !strings.HasPrefix(providerPaymentID, "test_provider_") {
		s.DB.Model(&model.Payment{}).
			Where("id = ? AND status = ?", paymentID, model.PaymentPending).
			Update("status", model.PaymentFailed)
		return nil, ErrVerificationFailed
	}

	var user model.User
	if err := s.DB.First(&user, payment.HostID).Error; err != nil {
		return nil, err
	}

	res := s.DB.Model(&model.Payment{}).
		Where("id = ? AND status = ?", paymentID, model.PaymentPending).
		Updates(map[string]interface{}{
			"status":              model.PaymentSuccess,
			"provider_payment_id": providerPaymentID,
			"user_email":          user.Email,
			"payment_method":      paymentMethodCard,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		return nil, err
	}

	if res.RowsAffected == 0 {
		// lost the race, or the payment had already failed
		if payment.Status == model.PaymentSuccess {
			return &payment, nil
		}
		return nil, ErrVerificationFailed
	}

	s.invalidateHistory(payment.HostID)

	settled := payment
	payer := user
	s.dispatch(func() { s.runPostPaymentPipeline(settled, payer) })

	return &payment, nil
}

// runPostPaymentPipeline generates the receipt, emails the payer and
// publishes the payment.paid event. It runs detached from the verify
// call: every failure here is logged and confined, a settled payment is
// never rolled back because a PDF or an email did not go out.
func (s *PaymentService) runPostPaymentPipeline(payment model.Payment, payer model.User) {
	title := s.hackathonTitle(payment)

	confirmTitle := title
	if payment.HackathonID == nil {
		confirmTitle = "Hackathon Creation"
	}
	subject, html := mail.ConfirmationEmail(payer.Name, payment.Amount, payment.Currency, payment.ID, confirmTitle)
	if err := s.sendMail(payer.Email, subject, html); err != nil {
		log.Printf("failed to send payment confirmation for payment %d: %v", payment.ID, err)
	}

	receiptTitle := title
	if receiptTitle == "" {
		receiptTitle = "Hackathon"
	}
	providerRef := payment.InvoiceID
	if payment.ProviderPaymentID != nil {
		providerRef = *payment.ProviderPaymentID
	}
	date := payment.CreatedAt.Format("02/01/2006")

	path, err := s.Receipts.Generate(payment.ID, receipt.Data{
		ReceiptID:     fmt.Sprint(payment.ID),
		UserName:      payer.Name,
		UserEmail:     payer.Email,
		HackathonName: receiptTitle,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		PaymentDate:   date,
		PaymentMethod: payment.PaymentMethod,
		Status:        payment.Status,
		InvoiceID:     payment.InvoiceID,
	})
	if err != nil {
		log.Printf("failed to generate receipt for payment %d: %v", payment.ID, err)
	} else {
		if err := s.DB.Model(&model.Payment{}).Where("id = ?", payment.ID).
			Update("receipt_path", path).Error; err != nil {
			log.Printf("failed to save receipt path for payment %d: %v", payment.ID, err)
		}

		subject, html := mail.ReceiptEmail(payer.Name, receiptTitle, payment.Amount,
			payment.Currency, providerRef, payment.InvoiceID, date)
		attachment := mail.Attachment{
			Filename: fmt.Sprintf("receipt-%s.pdf", payment.InvoiceID),
			Path:     path,
		}
		if err := s.sendMail(payer.Email, subject, html, attachment); err != nil {
			log.Printf("failed to send receipt email for payment %d: %v", payment.ID, err)
		}
	}

	if s.Producer != nil {
		var hackathonID uint
		if payment.HackathonID != nil {
			hackathonID = *payment.HackathonID
		}
		s.Producer.PublishPaymentPaid(map[string]interface{}{
			"event_type": "payment.paid",
			"data": map[string]interface{}{
				"payment_id":   payment.ID,
				"hackathon_id": hackathonID,
				"user_id":      payment.HostID,
				"amount":       payment.Amount,
				"paid_at":      time.Now().Format(time.RFC3339),
			},
		})
	}
}

type HistoryItem struct {
	ID                uint      `json:"id"`
	InvoiceID         string    `json:"invoice_id"`
	HackathonID       *uint     `json:"hackathon_id,omitempty"`
	HackathonTitle    string    `json:"hackathon_title,omitempty"`
	Amount            int64     `json:"amount"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	ProviderPaymentID *string   `json:"provider_payment_id,omitempty"`
	PaymentMethod     string    `json:"payment_method,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// History returns the caller's payments newest first, joined with the
// hackathon title and cached in redis for a few minutes.
func (s *PaymentService) History(userID uint) ([]HistoryItem, error) {
	cacheKey := historyCacheKey(userID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(cache.Ctx, cacheKey).Result(); err == nil {
			var list []HistoryItem
			if err := json.Unmarshal([]byte(cached), &list); err == nil {
				return list, nil
			}
		}
	}

	var list []HistoryItem
	err := s.DB.Table("payments").
		Select("payments.id, payments.invoice_id, payments.hackathon_id, hackathons.title AS hackathon_title, payments.amount, payments.currency, payments.status, payments.provider_payment_id, payments.payment_method, payments.created_at").
		Joins("LEFT JOIN hackathons ON hackathons.id = payments.hackathon_id").
		Where("payments.host_id = ?", userID).
		Order("payments.created_at DESC").
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []HistoryItem{}
	}

	if s.Redis != nil {
		if js, err := json.Marshal(list); err == nil {
			s.Redis.Set(cache.Ctx, cacheKey, js, historyCacheTTL)
		}
	}

	return list, nil
}

// ReceiptView bundles the payment with the payer and hackathon display
// fields the PDF needs.
type ReceiptView struct {
	Payment        model.Payment
	UserName       string
	UserEmail      string
	HackathonTitle string
}

// GetForReceipt loads a payment for receipt delivery. Unknown ids and
// ids owned by someone else both come back as ErrNotFound so the
// endpoint never leaks which payment ids exist.
func (s *PaymentService) GetForReceipt(paymentID, requesterID uint) (*ReceiptView, error) {
	var payment model.Payment
	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if payment.HostID != requesterID {
		return nil, ErrNotFound
	}

	var user model.User
	if err := s.DB.First(&user, payment.HostID).Error; err != nil {
		return nil, err
	}

	view := &ReceiptView{
		Payment:        payment,
		UserName:       user.Name,
		UserEmail:      user.Email,
		HackathonTitle: s.hackathonTitle(payment),
	}
	if view.HackathonTitle == "" {
		view.HackathonTitle = "AIrena Registration"
	}
	return view, nil
}

func (s *PaymentService) sendMail(to, subject, html string, attachments ...mail.Attachment) error {
	return mail.Retry(mail.SendAttempts, s.sendDelay, func() error {
		return s.Mailer.Send(to, subject, html, attachments...)
	})
}

func (s *PaymentService) hackathonTitle(payment model.Payment) string {
	if payment.HackathonID == nil {
		return ""
	}
	var hackathon model.Hackathon
	if err := s.DB.First(&hackathon, *payment.HackathonID).Error; err != nil {
		return ""
	}
	return hackathon.Title
}

func (s *PaymentService) invalidateHistory(userID uint) {
	if s.Redis != nil {
		s.Redis.Del(cache.Ctx, historyCacheKey(userID))
	}
}

func historyCacheKey(userID uint) string {
	return fmt.Sprintf("payments:%d", userID)
}

func newInvoiceID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixMilli(), rand.Intn(1000))
}

func newMockOrderID() string {
	return "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
