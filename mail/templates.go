package mail

import "fmt"

// ConfirmationEmail is the plain notice sent right after a payment is
// verified, before the PDF receipt is ready.
func ConfirmationEmail(name string, amount int64, currency string, paymentID uint, hackathonTitle string) (subject, html string) {
	if hackathonTitle == "" {
		hackathonTitle = "-"
	}
	subject = "Payment Receipt - AIrena"
	html = fmt.Sprintf(`
		<h2>Payment Successful</h2>
		<p>Hello %s,</p>
		<p>Your payment was successful.</p>
		<hr/>
		<p><b>Payment ID:</b> %d</p>
		<p><b>Amount:</b> %s %d</p>
		<p><b>Hackathon:</b> %s</p>
		<p><b>Status:</b> SUCCESS</p>
		<hr/>
		<p>AIrena Team</p>
	`, name, paymentID, currency, amount, hackathonTitle)
	return subject, html
}

// ReceiptEmail is the richer receipt message that carries the PDF
// attachment.
func ReceiptEmail(name, hackathonTitle string, amount int64, currency, providerRef, invoiceID, date string) (subject, html string) {
	subject = fmt.Sprintf("Your AIrena Receipt - %s", invoiceID)
	html = fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
			<div style="background:#0f172a;padding:24px;">
				<h1 style="color:#60a5fa;margin:0;">AIrena</h1>
				<p style="color:#94a3b8;margin:4px 0 0;">Hackathon Platform</p>
			</div>
			<div style="padding:24px;">
				<h2>Payment Receipt</h2>
				<p>Hi %s,</p>
				<p>Thank you for your payment for <b>%s</b>. Your receipt is attached to this email.</p>
				<table style="width:100%%;border-collapse:collapse;">
					<tr><td style="padding:6px 0;color:#64748b;">Invoice ID</td><td style="text-align:right;">%s</td></tr>
					<tr><td style="padding:6px 0;color:#64748b;">Payment Reference</td><td style="text-align:right;">%s</td></tr>
					<tr><td style="padding:6px 0;color:#64748b;">Date</td><td style="text-align:right;">%s</td></tr>
					<tr><td style="padding:6px 0;color:#64748b;">Amount</td><td style="text-align:right;"><b>%s %d</b></td></tr>
				</table>
				<p style="color:#94a3b8;font-size:12px;margin-top:24px;">
					This is a computer-generated receipt. No signature required.<br/>
					AIrena Hackathon Platform &bull; support@airena.io
				</p>
			</div>
		</div>
	`, name, hackathonTitle, invoiceID, providerRef, date, currency, amount)
	return subject, html
}
