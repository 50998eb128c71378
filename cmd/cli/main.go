package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-cli",
		Short: "Ledger CLI tool",
		Long:  `A command line interface for interacting with the ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(movementCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(ledgerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var name, email, phone string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts", map[string]any{
				"name":  name,
				"email": email,
				"phone": phone,
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Account holder name")
	createCmd.Flags().StringVar(&email, "email", "", "Account holder email")
	createCmd.Flags().StringVar(&phone, "phone", "", "Account holder phone")
	createCmd.MarkFlagRequired("name")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get an account by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts/"+args[0], nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts", nil)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodDelete, "/api/v1/accounts/"+args[0], nil)
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd, deleteCmd)

	return cmd
}

func movementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movement",
		Short: "Movement operations",
	}

	var title, amount string

	addCmd := &cobra.Command{
		Use:   "add <account-id>",
		Short: "Record a movement for an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/movements", map[string]any{
				"title":  title,
				"amount": amount,
			})
		},
	}
	addCmd.Flags().StringVar(&title, "title", "", "Movement title")
	addCmd.Flags().StringVar(&amount, "amount", "", "Signed amount, e.g. -42.50")
	addCmd.MarkFlagRequired("title")
	addCmd.MarkFlagRequired("amount")

	listCmd := &cobra.Command{
		Use:   "list <account-id>",
		Short: "List movements for an account, most recent first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts/"+args[0]+"/movements", nil)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <account-id> <movement-id>",
		Short: "Delete one movement and reverse its balance effect",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodDelete, "/api/v1/accounts/"+args[0]+"/movements/"+args[1], nil)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear <account-id>",
		Short: "Delete all movements for an account and reset its balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodDelete, "/api/v1/accounts/"+args[0]+"/movements", nil)
		},
	}

	cmd.AddCommand(addCmd, listCmd, deleteCmd, clearCmd)

	return cmd
}

func transferCmd() *cobra.Command {
	var from, to int64
	var title, amount string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer money between two accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/transfers", map[string]any{
				"source_account_id":      from,
				"destination_account_id": to,
				"title":                  title,
				"amount":                 amount,
			})
		},
	}

	cmd.Flags().Int64Var(&from, "from", 0, "Source account ID")
	cmd.Flags().Int64Var(&to, "to", 0, "Destination account ID")
	cmd.Flags().StringVar(&title, "title", "", "Transfer title")
	cmd.Flags().StringVar(&amount, "amount", "", "Positive amount to move")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check that every balance matches the sum of its movements",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/ledger/consistency", nil)
		},
	}

	cmd.AddCommand(consistencyCmd)

	return cmd
}

func doRequest(method, path string, payload map[string]any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\n%s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	if len(respBody) == 0 {
		fmt.Printf("OK (Status: %d)\n", resp.StatusCode)
		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		fmt.Println(string(respBody))
		return
	}

	fmt.Println(pretty.String())
}
