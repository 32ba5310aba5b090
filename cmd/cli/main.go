package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shopsetu/shopledger/internal/domain"
)

var (
	baseURL string
	timeout time.Duration
)

const verifyPageSize = 500

func main() {
	rootCmd := &cobra.Command{
		Use:   "shopledger-cli",
		Short: "ShopLedger CLI tool",
		Long:  `A command line interface for interacting with the ShopLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ShopLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	balancesCmd := &cobra.Command{
		Use:   "balances",
		Short: "Show the current balance map",
		Run: func(cmd *cobra.Command, args []string) {
			showBalances()
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Refold the full entry history locally and compare against served balances",
		Run: func(cmd *cobra.Command, args []string) {
			verifyBalances()
		},
	}

	rootCmd.AddCommand(balancesCmd)
	rootCmd.AddCommand(verifyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func showBalances() {
	balances, err := fetchBalances()
	if err != nil {
		fmt.Printf("Error fetching balances: %v\n", err)
		os.Exit(1)
	}
	printBalances(balances)
}

func verifyBalances() {
	entries, err := fetchAllEntries()
	if err != nil {
		fmt.Printf("Error fetching entries: %v\n", err)
		os.Exit(1)
	}

	recomputed, err := domain.Recompute(entries)
	if err != nil {
		fmt.Printf("Local recompute FAILED: %v\n", err)
		os.Exit(1)
	}

	served, err := fetchBalances()
	if err != nil {
		fmt.Printf("Error fetching balances: %v\n", err)
		os.Exit(1)
	}

	if recomputed.Equal(served) {
		fmt.Printf("Verification PASSED (%d entries)\n", len(entries))
		return
	}

	fmt.Println("Verification FAILED, balances differ:")
	for _, account := range unionAccounts(recomputed, served) {
		local := recomputed.Get(account)
		remote := served.Get(account)
		if !local.Equal(remote) {
			fmt.Printf("  %s: local=%s served=%s\n", account, local, remote)
		}
	}
	os.Exit(1)
}

func fetchAllEntries() ([]*domain.Entry, error) {
	client := &http.Client{Timeout: timeout}

	var all []*domain.Entry
	for offset := 0; ; offset += verifyPageSize {
		url := fmt.Sprintf("%s/api/v1/entries?limit=%d&offset=%d", baseURL, verifyPageSize, offset)
		body, err := get(client, url)
		if err != nil {
			return nil, err
		}

		var page struct {
			Entries []*domain.Entry `json:"entries"`
			Count   int             `json:"count"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("parse entries page: %w", err)
		}

		all = append(all, page.Entries...)
		if page.Count < verifyPageSize {
			return all, nil
		}
	}
}

func fetchBalances() (domain.BalanceMap, error) {
	client := &http.Client{Timeout: timeout}

	body, err := get(client, baseURL+"/api/v1/balances")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Balances map[string]decimal.Decimal `json:"balances"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse balances: %w", err)
	}

	balances := domain.NewBalanceMap()
	for name, balance := range resp.Balances {
		balances[domain.Account(name)] = balance
	}
	return balances, nil
}

func get(client *http.Client, url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func printBalances(balances domain.BalanceMap) {
	accounts := make([]domain.Account, 0, len(balances))
	for account := range balances {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i] < accounts[j] })

	for _, account := range accounts {
		fmt.Printf("%-22s %s\n", account, balances[account])
	}
}

func unionAccounts(a, b domain.BalanceMap) []domain.Account {
	seen := make(map[domain.Account]struct{}, len(a)+len(b))
	for account := range a {
		seen[account] = struct{}{}
	}
	for account := range b {
		seen[account] = struct{}{}
	}

	accounts := make([]domain.Account, 0, len(seen))
	for account := range seen {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i] < accounts[j] })
	return accounts
}
