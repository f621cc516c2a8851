package config

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// RunSetupWizard interactively collects the initial configuration and
// writes it to a .env file next to the binary.
func RunSetupWizard() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("VetLab Server Setup")
	fmt.Println("-------------------")

	adminUser := prompt(reader, "Admin username", "admin")

	fmt.Print("Admin password: ")
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	adminPass := strings.TrimSpace(string(passBytes))
	if adminPass == "" {
		return fmt.Errorf("admin password must not be empty")
	}

	databaseURL := prompt(reader, "Postgres URL (empty for SQLite)", "")
	sqlitePath := "laboratorio.db"
	if databaseURL == "" {
		sqlitePath = prompt(reader, "SQLite file path", sqlitePath)
	}

	port := prompt(reader, "Listen port", "8080")

	secret, err := randomSecret()
	if err != nil {
		return fmt.Errorf("failed to generate session secret: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SERVER_PORT=%s\n", port)
	fmt.Fprintf(&b, "DATABASE_URL=%s\n", databaseURL)
	fmt.Fprintf(&b, "SQLITE_PATH=%s\n", sqlitePath)
	fmt.Fprintf(&b, "SESSION_SECRET=%s\n", secret)
	fmt.Fprintf(&b, "ADMIN_USERNAME=%s\n", adminUser)
	fmt.Fprintf(&b, "ADMIN_PASSWORD=%s\n", adminPass)
	fmt.Fprintf(&b, "ADMIN_FORCE_SYNC=false\n")

	if err := os.WriteFile(".env", []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write .env: %w", err)
	}

	fmt.Println("\nConfiguration written to .env")
	return nil
}

func prompt(reader *bufio.Reader, label, defaultValue string) string {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", label, defaultValue)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue
	}
	return line
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
