package services

import (
	"fmt"

	"backoffice/internal/domain"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"
)

// maxAdjustment caps a single manual grant or deduction.
const maxAdjustment = 1_000_000

// CreditService handles manual credit adjustments from the back-office.
type CreditService struct {
	CreditRepo repositories.CreditRepository
	UserRepo   repositories.UserRepository
	AuditRepo  repositories.AuditRepository
	RequestID  string
}

// Adjust appends a ledger row for the user. The ledger insert is the only
// authoritative write; balance mirror and audit log are best effort.
func (s CreditService) Adjust(actorID, userID, amount int64, reason string) (int64, error) {
	if userID <= 0 {
		return 0, domain.ValidationError{Field: "userId", Msg: "must be a positive id"}
	}
	if amount == 0 {
		return 0, domain.ValidationError{Field: "amount", Msg: "must be non-zero"}
	}
	if amount > maxAdjustment || amount < -maxAdjustment {
		return 0, domain.ValidationError{Field: "amount", Msg: "exceeds the adjustment limit"}
	}
	if utils.TrimOrEmpty(reason) == "" {
		return 0, domain.ValidationError{Field: "reason", Msg: "is required"}
	}

	if _, err := s.UserRepo.GetByID(userID); err != nil {
		return 0, err
	}

	id, err := s.CreditRepo.Insert(userID, amount, actorID, utils.NormalizeSpace(reason))
	if err != nil {
		return 0, err
	}

	if err := s.CreditRepo.SyncBalance(userID); err != nil {
		utils.LogError(s.RequestID, "credits", "sync_balance", err)
	}

	detail := fmt.Sprintf("user_id=%d amount=%d reason=%s", userID, amount, reason)
	if _, err := s.AuditRepo.Insert(actorID, "credits.adjust", "credit_transactions", detail); err != nil {
		utils.LogError(s.RequestID, "credits", "audit", err)
	}

	utils.LogEvent(s.RequestID, "credits", "adjust", detail)
	return id, nil
}
