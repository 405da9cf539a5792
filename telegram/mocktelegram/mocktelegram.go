package mocktelegram

import "github.com/stretchr/testify/mock"

type Client struct {
	mock.Mock
}

func (c *Client) SendMessage(chatID int64, text string) error {
	args := c.Called(chatID, text)
	return args.Error(0)
}

func (c *Client) SetWebhook(url string) error {
	args := c.Called(url)
	return args.Error(0)
}
