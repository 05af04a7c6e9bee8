package transactions

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"myfintrack/internal/api/handlers"
	"myfintrack/internal/models"
	"myfintrack/internal/repositories/sqlconnect"
	"myfintrack/pkg/utils"
)

var minAmount = decimal.RequireFromString("0.01")

type transactionRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	TransactionType *string          `json:"transaction_type"`
	Category        *string          `json:"category"`
	Description     *string          `json:"description"`
	Date            *string          `json:"date"`
}

// validate checks the populated fields; requireAll additionally rejects a
// body missing any field (for create and full update).
func (req transactionRequest) validate(requireAll bool) (string, bool) {
	if requireAll {
		if req.Amount == nil {
			return "amount is required", false
		}
		if req.TransactionType == nil {
			return "transaction_type is required", false
		}
		if req.Category == nil {
			return "category is required", false
		}
		if req.Date == nil {
			return "date is required", false
		}
	}
	if req.Amount != nil && req.Amount.LessThan(minAmount) {
		return "amount must be at least 0.01", false
	}
	if req.TransactionType != nil && !models.TransactionType(*req.TransactionType).Valid() {
		return "invalid transaction_type code", false
	}
	if req.Category != nil && !models.Category(*req.Category).Valid() {
		return "invalid category code", false
	}
	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			return "date must be formatted YYYY-MM-DD", false
		}
	}
	return "", true
}

func scanTransaction(row interface {
	Scan(dest ...interface{}) error
}) (models.Transaction, error) {
	var transaction models.Transaction
	var date time.Time
	err := row.Scan(&transaction.ID, &transaction.UserID, &transaction.Amount, &transaction.TransactionType,
		&transaction.Category, &transaction.Description, &date, &transaction.CreatedAt, &transaction.UpdatedAt)
	if err != nil {
		return transaction, err
	}
	transaction.Date = date.Format("2006-01-02")
	return transaction, nil
}

const transactionColumns = "id, user_id, amount, transaction_type, category, description, date, created_at, updated_at"

// FUNC TO GET ALL TRANSACTIONS FOR A USER
func GetAllUserTransactions(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, limit := utils.GetPaginationParams(r)
	offset := (page - 1) * limit

	query := "SELECT " + transactionColumns + " FROM transactions WHERE user_id = ?"
	args := []interface{}{userID}

	if txType := r.URL.Query().Get("transaction_type"); txType != "" {
		if !models.TransactionType(txType).Valid() {
			utils.WriteError(w, "invalid transaction_type code", http.StatusBadRequest)
			return
		}
		query += " AND transaction_type = ?"
		args = append(args, txType)
	}
	if category := r.URL.Query().Get("category"); category != "" {
		if !models.Category(category).Valid() {
			utils.WriteError(w, "invalid category code", http.StatusBadRequest)
			return
		}
		query += " AND category = ?"
		args = append(args, category)
	}

	query = utils.AddSorting(r, query)

	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		utils.Logger.Errorf("error fetching transactions: %v", err)
		utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			utils.Logger.Errorf("error fetching data: %v", err)
			utils.WriteError(w, "error fetching transaction", http.StatusInternalServerError)
			return
		}
		transactions = append(transactions, transaction)
	}

	response := struct {
		Status   string               `json:"status"`
		Count    int                  `json:"count"`
		Page     int                  `json:"page"`
		PageSize int                  `json:"page_size"`
		Data     []models.Transaction `json:"data"`
	}{
		Status:   "success",
		Count:    len(transactions),
		Page:     page,
		PageSize: limit,
		Data:     transactions,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO CREATE A TRANSACTION
func CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req transactionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if msg, ok := req.validate(true); !ok {
		utils.WriteError(w, msg, http.StatusBadRequest)
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx, `
		INSERT INTO transactions (user_id, amount, transaction_type, category, description, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, req.Amount, *req.TransactionType, *req.Category, description, *req.Date)
	if err != nil {
		utils.Logger.Errorf("error creating transaction: %v", err)
		utils.WriteError(w, "error creating transaction", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("error reading transaction id: %v", err)
		utils.WriteError(w, "error creating transaction", http.StatusInternalServerError)
		return
	}

	transaction, err := scanTransaction(db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?", id, userID))
	if err != nil {
		utils.Logger.Errorf("error fetching created transaction: %v", err)
		utils.WriteError(w, "error creating transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(struct {
		Status string             `json:"status"`
		Data   models.Transaction `json:"data"`
	}{Status: "success", Data: transaction})
}

// FUNC TO GET ONE TRANSACTION BY ID
func GetTransactionById(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	transactionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transaction, err := scanTransaction(db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?",
		transactionID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "no transaction found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching data: %v", err)
		utils.WriteError(w, "error fetching transaction", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string             `json:"status"`
		Data   models.Transaction `json:"data"`
	}{Status: "success", Data: transaction})
}

// FUNC TO UPDATE A TRANSACTION (PUT = full, PATCH = partial)
func UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	transactionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req transactionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if msg, ok := req.validate(r.Method == http.MethodPut); !ok {
		utils.WriteError(w, msg, http.StatusBadRequest)
		return
	}

	sets := []string{}
	args := []interface{}{}
	if req.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, req.Amount)
	}
	if req.TransactionType != nil {
		sets = append(sets, "transaction_type = ?")
		args = append(args, *req.TransactionType)
	}
	if req.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *req.Date)
	}
	if len(sets) == 0 {
		utils.WriteError(w, "no fields to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	args = append(args, transactionID, userID)
	res, err := db.ExecContext(ctx,
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...)
	if err != nil {
		utils.Logger.Errorf("error updating transaction: %v", err)
		utils.WriteError(w, "error updating transaction", http.StatusInternalServerError)
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		// Distinguish a miss from an identical update.
		var exists int
		err = db.QueryRowContext(ctx,
			"SELECT 1 FROM transactions WHERE id = ? AND user_id = ?",
			transactionID, userID).Scan(&exists)
		if err == sql.ErrNoRows {
			utils.WriteError(w, "no transaction found", http.StatusNotFound)
			return
		}
	}

	transaction, err := scanTransaction(db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?",
		transactionID, userID))
	if err != nil {
		utils.Logger.Errorf("error fetching updated transaction: %v", err)
		utils.WriteError(w, "error updating transaction", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, struct {
		Status string             `json:"status"`
		Data   models.Transaction `json:"data"`
	}{Status: "success", Data: transaction})
}

// FUNC TO DELETE A TRANSACTION
func DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	transactionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?",
		transactionID, userID)
	if err != nil {
		utils.Logger.Errorf("error deleting transaction: %v", err)
		utils.WriteError(w, "error deleting transaction", http.StatusInternalServerError)
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		utils.WriteError(w, "no transaction found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "transaction deleted",
	})
}
