package utils

import (
	"academy/config"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0B1E3A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #0B1E3A; line-height: 1.6; }
			.content h2 { color: #0B1E3A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3BA55D; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				Academy &middot; automated notification, do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendCourseCompletedEmail congratulates a student on finishing a course.
func SendCourseCompletedEmail(email, userName, courseName string) error {
	body := fmt.Sprintf(`
		<h2>Congratulations, %s!</h2>
		<p>You have completed <strong>%s</strong>.</p>
		<p>You can now request your certificate from your dashboard.</p>`, userName, courseName)
	return SendEmail([]string{email}, "Course Completed - Academy", getEmailTemplate("Course Completed", body))
}

// SendCertificateEmail notifies a student that their certificate was issued.
func SendCertificateEmail(email, userName, courseName, code string) error {
	body := fmt.Sprintf(`
		<h2>Well done, %s!</h2>
		<p>Your certificate for <strong>%s</strong> has been issued.</p>
		<div class="info-box">Verification code: <strong>%s</strong></div>
		<p>Anyone can verify this certificate with the code above.</p>`, userName, courseName, code)
	return SendEmail([]string{email}, "Certificate Issued - Academy", getEmailTemplate("Certificate Issued", body))
}

// SendCertificateRejectedEmail informs a student that their request was rejected.
func SendCertificateRejectedEmail(email, userName, courseName, reason string) error {
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Your certificate request for <strong>%s</strong> was not approved.</p>
		<div class="info-box">Reason: %s</div>
		<p>Please contact your instructor for details.</p>`, userName, courseName, reason)
	return SendEmail([]string{email}, "Certificate Request Update - Academy", getEmailTemplate("Certificate Request", body))
}
