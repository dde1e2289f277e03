package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/savelyko/token-ledger/internal/domain/error"
	coreport "github.com/savelyko/token-ledger/internal/domain/port/core"
	"github.com/savelyko/token-ledger/internal/domain/port/usecase"
	"github.com/savelyko/token-ledger/internal/infrastructure/adapter/api/dto"
)

// LedgerHandler handles the balance endpoints consumed by the bot
type LedgerHandler struct {
	ledgerUseCase usecase.LedgerUseCase
	logger        coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(
	ledgerUseCase usecase.LedgerUseCase,
	logger coreport.Logger,
) *LedgerHandler {
	return &LedgerHandler{
		ledgerUseCase: ledgerUseCase,
		logger:        logger,
	}
}

// GetBalance handles the GET /user/{userId}/balance endpoint
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	balanceResponse, err := h.ledgerUseCase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.serverError(c, "Error getting user balance", userID, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  balanceResponse.UserID,
		Balance: balanceResponse.Balance,
	})
}

// RegisterUser handles the POST /user/{userId}/register endpoint
func (h *LedgerHandler) RegisterUser(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	created, err := h.ledgerUseCase.RegisterUser(c.Request.Context(), userID)
	if err != nil {
		h.serverError(c, "Error registering user", userID, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.RegisterResponse{
		UserID:  userID,
		Created: created,
	})
}

// Credit handles the POST /user/{userId}/credit endpoint
func (h *LedgerHandler) Credit(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.TokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidTokenCount),
			Message: "Invalid token count",
		})
		return
	}

	balance, err := h.ledgerUseCase.Credit(c.Request.Context(), userID, req.Tokens)
	if err != nil {
		if errors.Is(err, domainerr.ErrInvalidTokenCount) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: "Invalid token count",
			})
			return
		}
		h.serverError(c, "Error crediting user", userID, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreditResponse{
		UserID:  userID,
		Balance: balance,
	})
}

// Debit handles the POST /user/{userId}/debit endpoint. An insufficient
// balance is not an error: the bot inspects the success flag and tells the
// user to top up.
func (h *LedgerHandler) Debit(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.TokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidTokenCount),
			Message: "Invalid token count",
		})
		return
	}

	success, err := h.ledgerUseCase.Debit(c.Request.Context(), userID, req.Tokens)
	if err != nil {
		if errors.Is(err, domainerr.ErrInvalidTokenCount) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: "Invalid token count",
			})
			return
		}
		h.serverError(c, "Error debiting user", userID, err)
		return
	}

	c.JSON(http.StatusOK, dto.DebitResponse{
		UserID:  userID,
		Success: success,
	})
}

// CountUsers handles the GET /users/count endpoint
func (h *LedgerHandler) CountUsers(c *gin.Context) {
	count, err := h.ledgerUseCase.CountUsers(c.Request.Context())
	if err != nil {
		h.serverError(c, "Error counting users", 0, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// ListUserIDs handles the GET /users/ids endpoint
func (h *LedgerHandler) ListUserIDs(c *gin.Context) {
	ids, err := h.ledgerUseCase.ListUserIDs(c.Request.Context())
	if err != nil {
		h.serverError(c, "Error listing user ids", 0, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}

	c.JSON(http.StatusOK, dto.UserIDsResponse{UserIDs: ids})
}

// userID extracts and validates the userId path parameter, writing the error
// response itself when the value is unusable.
func (h *LedgerHandler) userID(c *gin.Context) (int64, bool) {
	userIDParam := c.Param("userId")
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "Invalid user ID format",
		})
		return 0, false
	}
	return userID, true
}

func (h *LedgerHandler) serverError(c *gin.Context, message string, userID int64, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "Internal server error"

	if errors.Is(err, domainerr.ErrStorageUnavailable) {
		statusCode = http.StatusServiceUnavailable
		errorMessage = "Storage unavailable"
	}

	fields := map[string]any{"error": err.Error()}
	if userID > 0 {
		fields["user_id"] = userID
	}
	h.logger.Error(message, fields)

	c.JSON(statusCode, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: errorMessage,
	})
}
