// Package seed loads the demo account and its sample transactions, the
// same set the original deployment shipped with. Seeding is idempotent and
// only runs when SEED_DEMO_DATA=true.
package seed

import (
	"context"
	"database/sql"
	"time"

	"myfintrack/internal/models"
	"myfintrack/pkg/utils"
)

const demoEmail = "demo@myfintrack.com"

type demoTx struct {
	amount   string
	txType   models.TransactionType
	category models.Category
	desc     string
	date     string
}

var demoTransactions = []demoTx{
	{"3500.00", models.TypeIncome, models.CategorySalary, "Monthly salary", "2024-12-05"},
	{"950.00", models.TypeExpense, models.CategoryHousing, "Rent payment", "2024-12-10"},
	{"280.00", models.TypeExpense, models.CategoryFood, "Grocery shopping", "2024-12-12"},
	{"120.00", models.TypeExpense, models.CategoryTransportation, "Gas for car", "2024-12-15"},
	{"65.00", models.TypeExpense, models.CategoryEntertainment, "Movie night", "2024-12-18"},
	{"450.00", models.TypeIncome, models.CategoryFreelance, "Website project", "2024-12-20"},
	{"85.00", models.TypeExpense, models.CategoryUtilities, "Electricity bill", "2024-12-22"},
	{"3500.00", models.TypeIncome, models.CategorySalary, "Monthly salary", "2025-01-05"},
	{"950.00", models.TypeExpense, models.CategoryHousing, "Rent payment", "2025-01-10"},
	{"310.00", models.TypeExpense, models.CategoryFood, "Grocery shopping", "2025-01-13"},
	{"40.00", models.TypeExpense, models.CategoryHealth, "Pharmacy", "2025-01-16"},
	{"200.00", models.TypeIncome, models.CategoryGift, "Birthday gift", "2025-01-19"},
	{"95.00", models.TypeExpense, models.CategoryShopping, "New shoes", "2025-01-24"},
	{"75.00", models.TypeExpense, models.CategoryUtilities, "Internet bill", "2025-01-28"},
	{"3500.00", models.TypeIncome, models.CategorySalary, "Monthly salary", "2025-02-05"},
	{"950.00", models.TypeExpense, models.CategoryHousing, "Rent payment", "2025-02-10"},
	{"265.00", models.TypeExpense, models.CategoryFood, "Grocery shopping", "2025-02-12"},
	{"150.00", models.TypeExpense, models.CategoryEducation, "Online course", "2025-02-14"},
	{"380.00", models.TypeExpense, models.CategoryTravel, "Weekend trip", "2025-02-21"},
	{"600.00", models.TypeIncome, models.CategoryInvestment, "Dividend payout", "2025-02-25"},
}

// LoadDemoData creates the demo user plus sample transactions when they do
// not already exist.
func LoadDemoData(ctx context.Context, db *sql.DB) error {
	var userID int
	err := db.QueryRowContext(ctx, "SELECT id FROM users WHERE email = ?", demoEmail).Scan(&userID)
	switch {
	case err == sql.ErrNoRows:
		hashed, err := utils.HashPassword("Password123")
		if err != nil {
			return utils.ErrorHandler(err, "failed to hash demo password")
		}
		res, err := db.ExecContext(ctx, `
			INSERT INTO users (first_name, last_name, email, password, role)
			VALUES ('Demo', 'User', ?, ?, 'user')`,
			demoEmail, hashed)
		if err != nil {
			return utils.ErrorHandler(err, "failed to create demo user")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return utils.ErrorHandler(err, "failed to read demo user id")
		}
		userID = int(id)
		utils.Logger.Info("Demo user created")
	case err != nil:
		return utils.ErrorHandler(err, "failed to look up demo user")
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions WHERE user_id = ?", userID).Scan(&count); err != nil {
		return utils.ErrorHandler(err, "failed to count demo transactions")
	}
	if count > 0 {
		utils.Logger.Info("Demo transactions already exist, skipping import")
		return nil
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO transactions (user_id, amount, transaction_type, category, description, date)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return utils.ErrorHandler(err, "failed to prepare demo transaction insert")
	}
	defer stmt.Close()

	for _, tx := range demoTransactions {
		if _, err := stmt.ExecContext(ctx, userID, tx.amount, tx.txType, tx.category, tx.desc, tx.date); err != nil {
			return utils.ErrorHandler(err, "failed to insert demo transaction")
		}
	}

	utils.Logger.Infof("Loaded %d demo transactions", len(demoTransactions))
	return nil
}

// Run wraps LoadDemoData with a bounded context for use at startup.
func Run(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return LoadDemoData(ctx, db)
}
