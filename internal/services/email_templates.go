package services

import (
	"fmt"
	"html"
)

const emailHead = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<link href="https://fonts.googleapis.com/css2?family=Poppins:wght@400;600&display=swap" rel="stylesheet">
</head>`

func renderResetCodeEmail(code string) string {
	return fmt.Sprintf(`%s
<body>
	<table style="width: 100%%; font-family: 'Poppins', sans-serif; font-size: 16px;">
		<tr><td style="font-weight: bold; color: black;">Melodistic</td></tr>
		<tr><td style="font-size: 14px; color: black;">To reset your password, please use the following One Time Password (OTP):</td></tr>
		<tr>
			<td style="background: black; color: white; padding: 44px 0; margin: 24px 0;">
				<div style="font-weight: 600; text-align: center; color: white;">One Time Password (OTP):</div>
				<div style="font-size: 28px; font-weight: bold; color: #FA8B44; text-align: center;">%s</div>
				<div style="font-size: 14px; text-align: center; color: white;">(This OTP is valid for only 5 minutes)</div>
			</td>
		</tr>
		<tr><td style="font-size: 14px;">Thank you for using Melodistic</td></tr>
	</table>
</body>
</html>`, emailHead, html.EscapeString(code))
}

func renderVerifyEmail(email, link string) string {
	e := html.EscapeString(email)
	l := html.EscapeString(link)
	return fmt.Sprintf(`%s
<body>
	<table style="width: 100%%; font-family: 'Poppins', sans-serif; font-size: 14px;">
		<tr>
			<td>
				<div style="max-width: 440px; margin: 0 auto;">
					<div style="font-size: 28px; font-weight: bold; margin-bottom: 16px; color: black;">
						Hi <a href="mailto:%s" style="color: black; text-decoration: none;">%s</a>,
					</div>
					<div style="color: black;">
						Thanks for creating a Melodistic Account. Please verify your email address by clicking the button below.
					</div>
					<a href="%s" style="display: block; margin: 24px 0; padding: 12px 0; background: #FA8B44; color: white; text-align: center; text-decoration: none; border-radius: 8px;">Verify email</a>
					<div style="font-size: 12px; color: gray;">This link expires in 1 hour.</div>
				</div>
			</td>
		</tr>
	</table>
</body>
</html>`, emailHead, e, e, l)
}
