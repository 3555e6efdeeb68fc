// Package notify defines the outbound notification contract used by the
// scheduler. A Dispatcher makes exactly one delivery attempt per call: no
// queuing on the caller's side, no batching, no backoff. Failures are returned
// to the caller and must never take the scheduler down.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"reminderkeeper/pkg/helpers"
	"reminderkeeper/pkg/mailer"
)

// Dispatcher sends one outbound message to a destination address.
type Dispatcher interface {
	Dispatch(ctx context.Context, to, subject, body, kind string) error
}

// QueueDispatcher publishes notification jobs to RabbitMQ; the notify_worker
// process drains the queue and delivers via Mailgun. Publishing counts as the
// single delivery attempt from the scheduler's point of view.
type QueueDispatcher struct {
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewQueueDispatcher(pub *helpers.RabbitPublisher, logger *logrus.Logger) *QueueDispatcher {
	return &QueueDispatcher{Pub: pub, Logger: logger}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, to, subject, body, kind string) error {
	job := mailer.NotificationJob{To: to, Subject: subject, Text: body, Kind: kind}
	if err := d.Pub.PublishJSON(ctx, job); err != nil {
		if d.Logger != nil {
			d.Logger.WithError(err).WithField("to", to).Error("notification enqueue failed")
		}
		return err
	}
	return nil
}

// MailgunDispatcher delivers directly through Mailgun, for deployments that
// run without the queue.
type MailgunDispatcher struct {
	MG     *mailer.Mailgun
	Logger *logrus.Logger
}

func NewMailgunDispatcher(mg *mailer.Mailgun, logger *logrus.Logger) *MailgunDispatcher {
	return &MailgunDispatcher{MG: mg, Logger: logger}
}

func (d *MailgunDispatcher) Dispatch(ctx context.Context, to, subject, body, kind string) error {
	if err := d.MG.Send(ctx, to, subject, body, ""); err != nil {
		if d.Logger != nil {
			d.Logger.WithError(err).WithField("to", to).Error("notification send failed")
		}
		return err
	}
	return nil
}

// LogDispatcher only logs the message. Used in development when neither
// RabbitMQ nor Mailgun is configured, and when sending is disabled.
type LogDispatcher struct {
	Logger *logrus.Logger
}

func NewLogDispatcher(logger *logrus.Logger) *LogDispatcher {
	return &LogDispatcher{Logger: logger}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, to, subject, body, kind string) error {
	d.Logger.WithFields(logrus.Fields{"to": to, "subject": subject, "kind": kind}).Info(body)
	return nil
}

var (
	_ Dispatcher = (*QueueDispatcher)(nil)
	_ Dispatcher = (*MailgunDispatcher)(nil)
	_ Dispatcher = (*LogDispatcher)(nil)
)
