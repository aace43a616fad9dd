package smtp

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

const (
	createSubject = "Your club has been added!"
	createBody    = "Hi %s,\n\n" +
		"Thanks for adding your club. It is now listed on the clubs map\n" +
		"and other people in your area can find it and get in touch.\n"

	createStaffSubject = "A new club has been added"
	createStaffBody    = "%s (%s) just added a club:\n\n" +
		"  Name: %s\n" +
		"  Location: %s\n" +
		"  Website: %s\n" +
		"  Description: %s\n"
)

// Client представляет почтовый клиент.
type Client struct {
	dialer *gomail.Dialer
	from   string
}

// NewClient инициализирует Client.
func NewClient(dialer *gomail.Dialer, from string) *Client {
	return &Client{dialer: dialer, from: from}
}

// SendClubCreated sends the creation notice to the club's owner.
func (c *Client) SendClubCreated(to string, username string) error {
	msg := c.newMessage([]string{to}, createSubject, fmt.Sprintf(createBody, username))
	return c.dialer.DialAndSend(msg)
}

// SendStaffClubNotification notifies the staff recipient list about a
// freshly created club.
func (c *Client) SendStaffClubNotification(to []string, username, email, clubName, clubLocation, clubWebsite, clubDescription string) error {
	body := fmt.Sprintf(createStaffBody, username, email, clubName, clubLocation, clubWebsite, clubDescription)
	msg := c.newMessage(to, createStaffSubject, body)
	return c.dialer.DialAndSend(msg)
}

func (c *Client) newMessage(to []string, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()

	domain := viper.GetString("service.smtp.domain")
	if domain == "" {
		domain = strings.SplitN(c.from+"@", "@", 3)[1]
	}

	msg.SetHeader("Message-ID", generateMessageID(domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return msg
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
