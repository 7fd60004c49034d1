// Package templates provides order notification templates
package templates

import (
	"fmt"
	"html"
)

type OrderItemLine struct {
	Name     string
	Quantity int
	Total    float64
}

type OrderConfirmationProps struct {
	CustomerName string
	OrderNumber  string
	LaundryName  string
	Items        []OrderItemLine
	DeliveryFee  float64
	FinalAmount  float64
}

func GetOrderConfirmationContent(props OrderConfirmationProps) string {
	itemRows := ""
	for _, item := range props.Items {
		itemRows += GetTableRow(
			fmt.Sprintf("%s &times; %d", html.EscapeString(item.Name), item.Quantity),
			fmt.Sprintf("%.2f MAD", item.Total))
	}
	itemRows += GetTableRow("Delivery fee", fmt.Sprintf("%.2f MAD", props.DeliveryFee))
	itemRows += GetTableRow("<strong>Total</strong>", fmt.Sprintf("<strong>%.2f MAD</strong>", props.FinalAmount))

	content := GetParagraph(fmt.Sprintf("Hello %s,", html.EscapeString(props.CustomerName))) +
		GetParagraph(fmt.Sprintf("Your order <strong>%s</strong> with %s has been received and is waiting for confirmation.",
			html.EscapeString(props.OrderNumber), html.EscapeString(props.LaundryName))) +
		fmt.Sprintf(`<table role="presentation" border="0" cellpadding="0" cellspacing="0" style="border-collapse: separate; width: 100%%; margin-bottom: 16px;" width="100%%"><tbody>%s</tbody></table>`, itemRows) +
		GetParagraph("We will let you know as soon as your laundry is on its way.")

	return content
}

type SuspensionNoticeProps struct {
	LaundryName    string
	AdminName      string
	CanceledOrders int
}

func GetSuspensionNoticeContent(props SuspensionNoticeProps) string {
	name := props.AdminName
	if name == "" {
		name = props.LaundryName
	}

	content := GetParagraph(fmt.Sprintf("Hello %s,", html.EscapeString(name))) +
		GetParagraph(fmt.Sprintf("Your laundry <strong>%s</strong> has been suspended on the WashLink platform.",
			html.EscapeString(props.LaundryName)))

	if props.CanceledOrders > 0 {
		content += GetParagraph(fmt.Sprintf("%d pending orders were canceled and the affected customers have been notified.",
			props.CanceledOrders))
	}

	content += GetParagraph("If you believe this is a mistake, please contact platform support.")
	return content
}
