// Command create-super-admin provisions the SecureVoice super-admin account.
// Running it again for the same username resets the password and, with
// -totp, enrols a fresh authenticator secret.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/securevoice/securevoice/internal/securevoice/app"
	"github.com/securevoice/securevoice/internal/securevoice/service"
	"github.com/securevoice/securevoice/internal/securevoice/store/drivers/sqlite"
	"github.com/securevoice/securevoice/pkg/cryptox"
	"github.com/skip2/go-qrcode"
)

func main() {
	cfg := app.LoadConfig()

	var (
		username = flag.String("username", "superadmin", "super-admin username")
		email    = flag.String("email", cfg.SuperAdminEmail, "super-admin email")
		fullName = flag.String("name", "Super Admin", "display name")
		password = flag.String("password", "", "password (generated when empty)")
		withTOTP = flag.Bool("totp", false, "enrol an authenticator app")
		qrFile   = flag.String("qr", "superadmin-totp.png", "where to write the enrolment QR code (with -totp)")
		dbFile   = flag.String("db", cfg.DatabaseFile, "SQLite database file")
		pepper   = flag.String("pepper", cfg.PepperFile, "pepper file shared with the server")
	)
	flag.Parse()

	if *password == "" {
		if env := os.Getenv("SUPER_ADMIN_PASSWORD"); env != "" {
			*password = env
		}
	}

	cryptox.SetPepperPath(*pepper)
	if err := cryptox.LoadPepper(); err != nil {
		log.Fatalf("failed to load pepper: %v", err)
	}

	db, err := sqlite.NewStore("file:" + *dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		log.Fatalf("failed to apply database migrations: %v", err)
	}

	svc := &service.SuperAdminService{Store: db}
	res, err := svc.Provision(context.Background(), service.ProvisionInput{
		Username: *username,
		Email:    *email,
		FullName: *fullName,
		Password: *password,
		TOTP:     *withTOTP,
	})
	if err != nil {
		log.Fatalf("failed to provision super admin: %v", err)
	}

	fmt.Printf("Super admin ready\n")
	fmt.Printf("  id:       %s\n", res.SuperAdmin.ID)
	fmt.Printf("  username: %s\n", res.SuperAdmin.Username)
	fmt.Printf("  email:    %s\n", res.SuperAdmin.Email)
	if res.Password != "" {
		fmt.Printf("  password: %s\n", res.Password)
		fmt.Printf("Store this password now, it is not shown again.\n")
	}

	if res.TOTPKey != nil {
		if err := qrcode.WriteFile(res.TOTPKey.URL(), qrcode.Medium, 256, *qrFile); err != nil {
			log.Fatalf("failed to write QR code: %v", err)
		}
		fmt.Printf("  totp:     %s\n", res.TOTPKey.Secret())
		fmt.Printf("Scan %s with an authenticator app, then delete it.\n", *qrFile)
	}
}
