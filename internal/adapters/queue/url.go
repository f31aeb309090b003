package queue

import (
	"fmt"
	"net/url"
)

// BuildURL assembles an AMQP connection URL from discrete broker
// credentials, the shape every cmd/ entry point starts from since
// QueueConfig carries host/port/user/pass separately (mirroring the
// individually-named RABBITMQ_* environment variables).
func BuildURL(host string, port int, user, pass string) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(user, pass),
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	return u.String()
}
