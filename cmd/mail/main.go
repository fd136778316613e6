package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/javialvarezdrive/gym-policia-local/internal/config"
	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("unable to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// Dial once up front so a bad SMTP config fails at startup.
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("unable to connect to mail server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("unable to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("unable to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"booking_email_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("message received", slog.String("message", string(msg.Body)))

				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
					logger.Error("unable to deserialize mail message", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("unable to set mail sender", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(mailMessage.To); err != nil {
					logger.Error("unable to set mail recipient", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				switch mailMessage.Type {
				case "session_booked":
					tmpl, err := template.ParseFiles("./templates/session_booked_email.html")
					if err != nil {
						logger.Error("unable to parse mail template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("unable to set mail body", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Gimnasio Policía Local - Sesión reservada")
				case "session_cancelled":
					tmpl, err := template.ParseFiles("./templates/session_cancelled_email.html")
					if err != nil {
						logger.Error("unable to parse mail template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("unable to set mail body", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Gimnasio Policía Local - Sesión cancelada")
				default:
					logger.Error("unsupported mail type", slog.String("type", mailMessage.Type))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("unable to send mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for messages... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down mail worker...")
	cancel()
	wg.Wait()
	slog.Info("mail worker stopped")
}
