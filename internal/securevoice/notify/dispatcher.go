package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Dispatcher renders and sends every email the identity flows produce.
type Dispatcher struct {
	mailer          Mailer
	frontendURL     string
	superAdminEmail string
}

func NewDispatcher(mailer Mailer, frontendURL, superAdminEmail string) *Dispatcher {
	return &Dispatcher{
		mailer:          mailer,
		frontendURL:     strings.TrimRight(frontendURL, "/"),
		superAdminEmail: superAdminEmail,
	}
}

func (d *Dispatcher) SendRegistrationOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	return d.send(ctx, to, "SecureVoice - Your verification code", "registration_otp.html", map[string]any{
		"Code":    code,
		"Minutes": int(ttl.Minutes()),
	})
}

func (d *Dispatcher) SendWelcome(ctx context.Context, to, name string) error {
	return d.send(ctx, to, "Welcome to SecureVoice", "welcome.html", map[string]any{
		"Name":     name,
		"LoginURL": d.frontendURL + "/login",
	})
}

// SendAdminApproval delivers the raw password-setup and email-verification
// tokens as links.
func (d *Dispatcher) SendAdminApproval(ctx context.Context, a domain.Admin, passwordToken, emailToken string, passwordTTL time.Duration) error {
	return d.send(ctx, a.Email, "District Admin Account Approved", "admin_approved.html", map[string]any{
		"Name":               displayName(a),
		"Username":           a.Username,
		"Email":              a.Email,
		"District":           a.DistrictName,
		"Designation":        a.Designation,
		"PasswordSetupURL":   d.link("/admin-password-setup", passwordToken),
		"PasswordSetupHours": int(passwordTTL.Hours()),
		"EmailVerifyURL":     d.link("/verify-admin-email", emailToken),
		"LoginURL":           d.frontendURL + "/adminLogin",
	})
}

func (d *Dispatcher) SendAdminRejection(ctx context.Context, a domain.Admin, reason string) error {
	return d.send(ctx, a.Email, "District Admin Registration Request Rejected", "admin_rejected.html", map[string]any{
		"Name":         displayName(a),
		"Reason":       reason,
		"ContactEmail": d.superAdminEmail,
	})
}

func (d *Dispatcher) SendPasswordSetConfirmation(ctx context.Context, a domain.Admin) error {
	return d.send(ctx, a.Email, "SecureVoice - Admin password set", "admin_password_set.html", map[string]any{
		"Name":     displayName(a),
		"Username": a.Username,
		"LoginURL": d.frontendURL + "/adminLogin",
	})
}

func (d *Dispatcher) SendAdminLoginOTP(ctx context.Context, a domain.Admin, code string, ttl time.Duration) error {
	return d.send(ctx, a.Email, "SecureVoice - Admin login code", "admin_login_otp.html", map[string]any{
		"Name":    displayName(a),
		"Code":    code,
		"Minutes": int(ttl.Minutes()),
	})
}

func (d *Dispatcher) link(path, token string) string {
	return d.frontendURL + path + "?token=" + url.QueryEscape(token)
}

func (d *Dispatcher) send(ctx context.Context, to, subject, name string, data any) error {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return fmt.Errorf("notify: render %s: %w", name, err)
	}
	return d.mailer.Send(ctx, Message{To: to, Subject: subject, HTML: body.String()})
}

func displayName(a domain.Admin) string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}
