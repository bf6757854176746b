package service

import (
	"fmt"

	"healthyfamilies/internal/models"
)

// buildInvitationEmail composes the invitation message for a person who
// does not have an account yet. The sign-in link carries them through
// account creation straight into the join flow; the code is included as
// a fallback for entering manually.
func buildInvitationEmail(toEmail, inviterName, signInLink, invitationCode string) *models.MailMessage {
	subject := "You have been invited to join a family on Healthy Families!"

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #4a90e2; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.code { font-size: 24px; letter-spacing: 4px; font-weight: bold; text-align: center; padding: 10px; background-color: #eee; border-radius: 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>You're Invited!</h1>
		</div>
		<div class="content">
			<p>Hello,</p>
			<p>%s has invited you to join their family on Healthy Families.</p>
			<p>Click the button below to create your account and join:</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Join the Family</a>
			</p>
			<p>Or sign up and enter this invitation code:</p>
			<p class="code">%s</p>
			<p><strong>This invitation expires in 7 days.</strong></p>
			<p>If you weren't expecting this invitation, you can safely ignore this email.</p>
		</div>
		<div class="footer">
			<p>This is an automated email from Healthy Families. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, inviterName, signInLink, invitationCode)

	textBody := fmt.Sprintf(`Hello,

%s has invited you to join their family on Healthy Families.

Click the link below to create your account and join:
%s

Or sign up and enter this invitation code: %s

This invitation expires in 7 days.

If you weren't expecting this invitation, you can safely ignore this email.

---
This is an automated email from Healthy Families. Please do not reply.
`, inviterName, signInLink, invitationCode)

	return &models.MailMessage{
		ToEmail:  toEmail,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}
