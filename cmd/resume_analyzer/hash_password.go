package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print the bcrypt hash to use as HR_PASSWORD_HASH",
	Long:  "Hash a password read from standard input with BCRYPT_COST and PASSWORD_PEPPER, for the HR_PASSWORD_HASH setting.",
	Args:  cobra.NoArgs,
	RunE:  runHashPassword,
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(cmd *cobra.Command, _ []string) error {
	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read password from stdin: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := passwords.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return err
}
