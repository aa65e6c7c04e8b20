package kafka

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"github.com/tusharsraj1907-hash/AIrena/model"
)

type PaymentPaidEvent struct {
	EventType string `json:"event_type"`
	Data      struct {
		PaymentID   uint   `json:"payment_id"`
		HackathonID uint   `json:"hackathon_id"`
		UserID      uint   `json:"user_id"`
		Amount      int64  `json:"amount"`
		PaidAt      string `json:"paid_at"`
	} `json:"data"`
}

// PaymentPaidHandler flips the payer's hackathon registration to PAID when
// a payment.paid event arrives. The guarded update keeps redelivered
// events from re-writing an already-paid registration.
func PaymentPaidHandler(db *gorm.DB) func([]byte) {
	return func(msg []byte) {
		log.Printf("payment.paid received: %s", string(msg))

		var event PaymentPaidEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			log.Printf("invalid payment.paid payload: %v", err)
			return
		}

		if event.Data.HackathonID == 0 {
			// platform-fee payment, nothing to register
			return
		}

		res := db.Model(&model.Registration{}).
			Where("hackathon_id = ? AND user_id = ? AND status <> ?",
				event.Data.HackathonID, event.Data.UserID, model.RegistrationPaid).
			Update("status", model.RegistrationPaid)

		if res.Error != nil {
			log.Printf("failed to update registration for hackathon %d: %v",
				event.Data.HackathonID, res.Error)
			return
		}

		if res.RowsAffected == 0 {
			log.Printf("registration for hackathon %d already paid / not found",
				event.Data.HackathonID)
			return
		}

		log.Printf("registration for hackathon %d marked PAID (payment_id=%d)",
			event.Data.HackathonID, event.Data.PaymentID)
	}
}
