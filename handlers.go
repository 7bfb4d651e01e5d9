package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fintrack/pkg/ledger"
)

func setupRoutes(r *gin.Engine, svc *ledger.Service, users userFinder) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	tx := r.Group("/transactions")
	tx.Use(jwtAuthMiddleware(users))
	tx.POST("", createTransactionHandler(svc))
	tx.GET("", listTransactionsHandler(svc))
	tx.GET("/summary", transactionSummaryHandler(svc))
	tx.DELETE("/:id", deleteTransactionHandler(svc))
}

// createTransactionHandler adds a transaction for the authenticated user.
// Any owner field in the payload is ignored; TransactionInput has no such
// field, so ownership always comes from the token.
func createTransactionHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		var in ledger.TransactionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		t, err := svc.Add(c.Request.Context(), userID, in)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

func listTransactionsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		period, err := ledger.ParsePeriod(c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		items, err := svc.List(c.Request.Context(), userID, period)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func transactionSummaryHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		period, err := ledger.ParsePeriod(c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		sum, err := svc.Summarize(c.Request.Context(), userID, period)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, sum)
	}
}

func deleteTransactionHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		if err := svc.Remove(c.Request.Context(), userID, uint(id)); err != nil {
			writeServiceError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// writeServiceError maps the service error taxonomy to HTTP statuses. Storage
// failures are logged with detail but answered generically so driver internals
// never reach the client.
func writeServiceError(c *gin.Context, err error) {
	var ve *ledger.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
		return
	}
	var nf *ledger.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
		return
	}
	log.Printf("internal error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
