package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-marketplace-gate/internal/infrastructure/smtp"
	"github.com/go-marketplace-gate/internal/infrastructure/sns"
)

// CodeDispatcher delivers one-time codes: email identifiers over SMTP,
// E.164 phone identifiers over SNS.
type CodeDispatcher struct {
	mailer    smtp.Mailer
	smsSender sns.SMSSender
}

func NewCodeDispatcher(mailer smtp.Mailer, smsSender sns.SMSSender) *CodeDispatcher {
	return &CodeDispatcher{mailer: mailer, smsSender: smsSender}
}

// SendCode routes the code to the channel matching identifier.
func (d *CodeDispatcher) SendCode(ctx context.Context, identifier, code string, expiresAt time.Time) error {
	minutes := int(time.Until(expiresAt).Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	if strings.HasPrefix(identifier, "+") {
		if d.smsSender == nil {
			return fmt.Errorf("sms delivery not configured")
		}
		return d.smsSender.SendSMS(ctx, identifier, fmt.Sprintf("Your password reset code: %s (valid %d min)", code, minutes))
	}
	if d.mailer == nil {
		return fmt.Errorf("email delivery not configured")
	}
	body := fmt.Sprintf("Your password reset code is %s.\r\nIt expires in %d minutes. If you did not request it, ignore this email.", code, minutes)
	return d.mailer.SendEmail(identifier, "Password reset code", body)
}
