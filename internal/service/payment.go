package service

import (
	"context"

	"webshop-demo/internal/model"
	"webshop-demo/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PaymentService records payment attempts. The implementation here is a
// simulated gateway: every charge succeeds, but a durable Payment row
// linking user, amount and status is still written so order history has
// a matching payment trail.
type PaymentService interface {
	Charge(ctx context.Context, tx *gorm.DB, userID uint, amount decimal.Decimal) (*model.Payment, error)
}

type paymentServiceImpl struct {
	paymentRepo repository.PaymentRepository
	log         *logrus.Logger
}

func NewPaymentService(paymentRepo repository.PaymentRepository, log *logrus.Logger) PaymentService {
	return &paymentServiceImpl{
		paymentRepo: paymentRepo,
		log:         log,
	}
}

func (s *paymentServiceImpl) Charge(ctx context.Context, tx *gorm.DB, userID uint, amount decimal.Decimal) (*model.Payment, error) {
	payment := &model.Payment{
		UserID: userID,
		Amount: amount,
		Status: "success",
	}

	if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount.StringFixed(2),
	}).Info("simulated payment processed")

	return payment, nil
}
