package database

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"golang.org/x/crypto/bcrypt"
)

var DB *sql.DB

// schema creates every table the application relies on. CREATE TABLE IF
// NOT EXISTS keeps restarts against an existing data file safe.
const schema = `
CREATE TABLE IF NOT EXISTS members (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    phone TEXT NOT NULL UNIQUE,
    address TEXT,
    age INTEGER,
    gender TEXT,
    membership_type TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    fees REAL NOT NULL,
    payment_status TEXT NOT NULL DEFAULT 'Pending',
    last_payment_date TEXT,
    amount_paid REAL DEFAULT 0,
    pending_amount REAL DEFAULT 0,
    status TEXT DEFAULT 'Active',
    photo_path TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS payments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    member_id INTEGER NOT NULL,
    phone TEXT NOT NULL,
    amount REAL NOT NULL,
    payment_date TEXT NOT NULL,
    payment_type TEXT NOT NULL,
    notes TEXT,
    receipt_ref TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS personal_training (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    member_id INTEGER NOT NULL,
    trainer_name TEXT NOT NULL,
    plan_duration INTEGER NOT NULL,
    fee REAL NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    status TEXT DEFAULT 'Active',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS attendance (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    member_id INTEGER NOT NULL,
    check_in_time TEXT NOT NULL,
    date TEXT NOT NULL,
    trainer_name TEXT,
    FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS admin (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitDB opens the SQLite data file, applies the schema and seeds the
// default admin account on first run.
func InitDB(dbPath string) {
	var err error
	DB, err = Open(dbPath)
	if err != nil {
		log.Fatalf("Error opening database: %q", err)
	}
}

// Open opens a SQLite database at the given path and bootstraps it.
// Exposed separately from InitDB so tests can run against :memory:.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	// A single local file store; one connection avoids SQLITE_BUSY on
	// concurrent statement execution within the process.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		return nil, err
	}
	if err = seedDefaultAdmin(db); err != nil {
		return nil, err
	}
	return db, nil
}

// seedDefaultAdmin creates the admin/admin123 account when the admin
// table is empty, so a fresh install is usable immediately.
func seedDefaultAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admin").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec("INSERT INTO admin (username, password_hash) VALUES (?, ?)", "admin", string(hash))
	return err
}

// GetDB returns the database handle.
func GetDB() *sql.DB {
	return DB
}
