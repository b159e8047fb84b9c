package email

import (
	"fmt"
	"strings"

	"github.com/example/ecofinds/internal/domain/order"
)

// BuildPurchaseReceiptBody builds the HTML body for a purchase receipt.
func BuildPurchaseReceiptBody(o order.Order) string {
	var itemsHTML strings.Builder
	for _, p := range o.Products {
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">Rs %.2f</td>
			</tr>`,
			p.Title,
			p.Category,
			p.Price,
		))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #1a1a1a; padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: #d4af37; margin: 0; font-size: 24px;">Thanks for giving goods a second life</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">Hi %s, your order is confirmed.</p>

		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Order number</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		</div>

		<h2 style="font-size: 18px; border-bottom: 2px solid #d4af37; padding-bottom: 10px;">Items</h2>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background: #f8f9fa;">
					<th style="padding: 12px; text-align: left;">Item</th>
					<th style="padding: 12px; text-align: left;">Category</th>
					<th style="padding: 12px; text-align: right;">Price</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p style="font-size: 18px; text-align: right; margin: 20px 0;">Total: <strong>Rs %.2f</strong></p>

		<p style="font-size: 13px; color: #999; margin-bottom: 0;">EcoFinds — the marketplace for pre-owned treasures.</p>
	</div>
</body>
</html>`,
		o.Buyer.Username,
		o.ID,
		itemsHTML.String(),
		o.TotalAmount,
	)
}
