package ports

import "context"

// Email mensaje HTML saliente.
type Email struct {
	To      string
	From    string
	Subject string
	HTML    string
}

// Mailer puerto de salida para el envío de correos (SMTP, log, fake en tests).
// La aplicación no depende del resultado para completar la operación que lo dispara.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}
