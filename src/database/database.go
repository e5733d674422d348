package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/finboard/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migrateBalanceSheetTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS balance_sheets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		date TEXT,
		raw_json TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		date TEXT,
		amount REAL,
		type TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

// migrateBalanceSheetTable backfills the batch_id column on databases created
// before uploads were batched.
func migrateBalanceSheetTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='balance_sheets'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			if logger.L != nil {
				logger.L.Info("'balance_sheets' table does not exist, no migration needed as table will be created.")
			} else {
				stdlog.Println("'balance_sheets' table does not exist, no migration needed as table will be created.")
			}
			return
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'balance_sheets' table", "error", err)
		} else {
			stdlog.Printf("Error checking for 'balance_sheets' table: %v", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(balance_sheets)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'balance_sheets'", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for 'balance_sheets': %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'balance_sheets'", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for 'balance_sheets': %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'balance_sheets'", "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for 'balance_sheets': %v", err)
		}
		return
	}

	if _, ok := columnExists["batch_id"]; !ok {
		_, err := DB.Exec("ALTER TABLE balance_sheets ADD COLUMN batch_id TEXT NOT NULL DEFAULT ''")
		if err != nil {
			logger.L.Error("Error adding 'batch_id' column to 'balance_sheets' table", "error", err)
		} else {
			logger.L.Info("Added 'batch_id' column to 'balance_sheets' table")
		}
	}
}
