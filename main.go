// Lavafix tracks clients, monthly payments, and reminders for a small
// repair-service business.
package main

import (
	"os"

	"github.com/alexgomez/lavafix/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
