// Package email provides email client functionality
package email

import (
	"fmt"
	"os"

	"github.com/resendlabs/resend-go"

	"github.com/WashLinkHQ/washlink-go/email/templates"
	"github.com/WashLinkHQ/washlink-go/models"
)

type Client struct {
	resend    *resend.Client
	fromEmail string
	fromName  string
}

func NewClient() (*Client, error) {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	fromEmail := os.Getenv("EMAIL_FROM")
	if fromEmail == "" {
		fromEmail = "noreply@washlink.app"
	}

	fromName := os.Getenv("EMAIL_FROM_NAME")
	if fromName == "" {
		fromName = "WashLink"
	}

	client := resend.NewClient(apiKey)

	return &Client{
		resend:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

// SendOrderConfirmation notifies a customer that their order was received.
func (c *Client) SendOrderConfirmation(order *models.Order, laundryName string) error {
	items := make([]templates.OrderItemLine, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, templates.OrderItemLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Total:    item.TotalPrice,
		})
	}

	content := templates.GetOrderConfirmationContent(templates.OrderConfirmationProps{
		CustomerName: order.Customer.DisplayName(),
		OrderNumber:  order.OrderNumber,
		LaundryName:  laundryName,
		Items:        items,
		DeliveryFee:  order.DeliveryFee,
		FinalAmount:  order.FinalAmount,
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader: fmt.Sprintf("Order %s received", order.OrderNumber),
		Content:   content,
	})

	request := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{order.Customer.Email},
		Subject: fmt.Sprintf("Your WashLink order %s", order.OrderNumber),
		Html:    htmlContent,
	}

	_, err := c.resend.Emails.Send(request)
	if err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}
	return nil
}

// SendSuspensionNotice notifies a laundry admin that the account was suspended.
func (c *Client) SendSuspensionNotice(laundry *models.Laundry, canceledOrders int) error {
	to := laundry.AdminEmail
	if to == "" {
		to = laundry.Email
	}

	content := templates.GetSuspensionNoticeContent(templates.SuspensionNoticeProps{
		LaundryName:    laundry.Name,
		CanceledOrders: canceledOrders,
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader: "Account suspension notice",
		Content:   content,
	})

	request := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{to},
		Subject: "Your WashLink account has been suspended",
		Html:    htmlContent,
	}

	_, err := c.resend.Emails.Send(request)
	if err != nil {
		return fmt.Errorf("failed to send suspension notice: %w", err)
	}
	return nil
}
