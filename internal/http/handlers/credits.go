package handlers

import (
	"net/http"
	"strconv"

	"backoffice/internal/http/middleware"
	"backoffice/internal/pagination"
	"backoffice/internal/repositories"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/admin/credits?userId=&page=&perPage=
func GetCreditTransactions(c *gin.Context) {
	p := pagination.Normalize(c.Query("page"), c.Query("perPage"))

	var userID int64
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid userId", err)
			return
		}
		userID = id
	}

	txs, total, err := repositories.CreditRepository{}.List(userID, p)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list credit transactions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":    txs,
		"total":   total,
		"page":    p.Page,
		"perPage": p.PerPage,
	})
}

type adjustCreditsRequest struct {
	UserID int64  `json:"userId"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// POST /api/v1/admin/credits
func AdjustCredits(c *gin.Context) {
	var req adjustCreditsRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	actor, _ := middleware.CurrentAdmin(c)
	svc := services.CreditService{
		CreditRepo: repositories.CreditRepository{},
		UserRepo:   repositories.UserRepository{},
		AuditRepo:  repositories.AuditRepository{},
		RequestID:  middleware.GetRequestID(c),
	}

	id, err := svc.Adjust(actor.ID, req.UserID, req.Amount, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": id}})
}
