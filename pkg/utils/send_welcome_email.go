package utils

import (
	"fmt"
	"time"
)

func SendWelcomeEmail(to, firstName string) error {
	subject := fmt.Sprintf("Welcome to MyFinTrack, %s!", firstName)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8" />
		<style>
			body { font-family: Arial, sans-serif; background-color: #f4f6f8; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #ffffff; border-radius: 8px; overflow: hidden; border-top: 4px solid #2563eb; }
			.header { background-color: #2563eb; color: #ffffff; text-align: center; padding: 30px 20px; }
			.content { padding: 30px 35px; color: #333333; line-height: 1.7; }
			.footer { background: #f4f6f8; text-align: center; padding: 20px; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Welcome to MyFinTrack</h1></div>
			<div class="content">
				<p>Hi %s,</p>
				<p>Your account is ready. Start recording income and expenses,
				set monthly or yearly budgets per category, and generate
				insights about your spending whenever you like.</p>
				<p>Happy tracking!</p>
			</div>
			<div class="footer">&copy; %d MyFinTrack</div>
		</div>
	</body>
	</html>
	`, firstName, time.Now().Year())

	return SendEmail(to, subject, body)
}
