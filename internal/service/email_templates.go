package service

import "fmt"

func verifyEmailTemplate(verifyURL, appName string) (string, string) {
	subject := fmt.Sprintf("Verify your email for %s", appName)
	body := fmt.Sprintf(`Welcome! Please confirm your email address to activate your account:
%s

This link expires in 24 hours and can only be used once.

If you didn't create an account, you can safely ignore this email.

Best,
The %s Team`, verifyURL, appName)

	return subject, body
}

func welcomeEmailTemplate(dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi there,

Your email is verified and your account is active!

Start by setting your learning goal and its key results, then ask your study assistant "what should I do today":
%s

Best,
The %s Team`, dashboardURL, appName)

	return subject, body
}

func exportReadyEmailTemplate(downloadURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s export is ready", appName)
	body := fmt.Sprintf(`Hi there,

The export of your learning goal and chat history is ready:
%s

This link expires in 24 hours.

Best,
The %s Team`, downloadURL, appName)

	return subject, body
}
