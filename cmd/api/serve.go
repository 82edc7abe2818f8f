package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// serve atiende en addr hasta recibir una señal en quit y luego apaga con timeout.
// Si Listen falla antes (puerto ocupado, dirección inválida) devuelve ese error.
func serve(app *fiber.App, addr string, quit <-chan os.Signal, timeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("escuchar en %s: %w", addr, err)
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	return nil
}
